package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jansctl/internal/api"

	"github.com/spf13/cobra"
)

func resetListFlags() {
	listPattern, listLimit, listStartIndex, listStatus = "", 0, 0, ""
}

func TestListOptions(t *testing.T) {
	defer resetListFlags()

	tests := []struct {
		name       string
		kind       api.Kind
		pattern    string
		limit      int
		startIndex int
		status     string
		want       api.ListOptions
		wantErr    bool
	}{
		{
			name:    "pattern and paging",
			kind:    api.KindScope,
			pattern: "profile",
			limit:   20,
			want:    api.ListOptions{Pattern: "profile", Limit: 20},
		},
		{
			name:   "attribute status is lowercased",
			kind:   api.KindAttribute,
			status: "INACTIVE",
			want:   api.ListOptions{Status: "inactive"},
		},
		{
			name:    "status on scopes",
			kind:    api.KindScope,
			status:  "active",
			wantErr: true,
		},
		{
			name:    "unknown status",
			kind:    api.KindAttribute,
			status:  "deleted",
			wantErr: true,
		},
		{
			name:    "negative limit",
			kind:    api.KindOIDCClient,
			limit:   -1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listPattern, listLimit, listStartIndex, listStatus = tt.pattern, tt.limit, tt.startIndex, tt.status
			got, err := listOptions(tt.kind)
			if (err != nil) != tt.wantErr {
				t.Fatalf("listOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("listOptions() = %+v, expected %+v", got, tt.want)
			}
		})
	}
}

func TestListResourceTypes(t *testing.T) {
	types := listResourceTypes()

	expected := []string{"clients", "scopes", "attributes", "scripts"}
	if len(types) != len(expected) {
		t.Fatalf("Expected %d resource types, got %v", len(expected), types)
	}
	for i, want := range expected {
		if types[i] != want {
			t.Errorf("listResourceTypes()[%d] = %q, expected %q", i, types[i], want)
		}
	}
}

func TestParseEntityKind(t *testing.T) {
	tests := []struct {
		input   string
		want    api.Kind
		wantErr bool
	}{
		{"scope", api.KindScope, false},
		{"scopes", api.KindScope, false},
		{"attr", api.KindAttribute, false},
		{"attribute", api.KindAttribute, false},
		{"client", "", true},
		{"scripts", "", true},
		{"user", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseEntityKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseEntityKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseEntityKind(%q) = %q, expected %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateAttribute(t *testing.T) {
	valid := api.Attribute{
		Name:        "nickname",
		DisplayName: "Nickname",
		DataType:    "STRING",
		Status:      api.AttributeStatusActive,
	}

	if err := validateAttribute(valid); err != nil {
		t.Errorf("Expected valid attribute, got %v", err)
	}

	missing := api.Attribute{Status: api.AttributeStatusActive}
	err := validateAttribute(missing)
	if err == nil || !strings.Contains(err.Error(), "name, display-name, data-type") {
		t.Errorf("Expected all missing fields to be named, got %v", err)
	}

	badType := valid
	badType.DataType = "BLOB"
	if err := validateAttribute(badType); err == nil {
		t.Error("Expected error for an unknown data type")
	}

	badStatus := valid
	badStatus.Status = "REMOVED"
	if err := validateAttribute(badStatus); err == nil {
		t.Error("Expected error for an unknown status")
	}
}

func TestReadAttributeFile(t *testing.T) {
	yamlDef := "name: nickname\ndisplayName: Nickname\ndataType: STRING\n"

	t.Run("stdin", func(t *testing.T) {
		attr, err := readAttributeFile("-", strings.NewReader(yamlDef))
		if err != nil {
			t.Fatalf("readAttributeFile failed: %v", err)
		}
		if attr.Name != "nickname" || attr.DisplayName != "Nickname" || attr.DataType != "STRING" {
			t.Errorf("Unexpected attribute %+v", attr)
		}
	})

	t.Run("json file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "attr.json")
		if err := os.WriteFile(path, []byte(`{"name":"nickname","status":"INACTIVE"}`), 0o600); err != nil {
			t.Fatal(err)
		}
		attr, err := readAttributeFile(path, nil)
		if err != nil {
			t.Fatalf("readAttributeFile failed: %v", err)
		}
		if attr.Name != "nickname" || attr.Status != "INACTIVE" {
			t.Errorf("Unexpected attribute %+v", attr)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := readAttributeFile(filepath.Join(t.TempDir(), "nope.yaml"), nil); err == nil {
			t.Error("Expected error for a missing file")
		}
	})

	t.Run("malformed", func(t *testing.T) {
		if _, err := readAttributeFile("-", strings.NewReader("name: [unterminated")); err == nil {
			t.Error("Expected error for malformed YAML")
		}
	})
}

func TestBuildAttribute(t *testing.T) {
	defer func() { attrFlags = attributeFlags{} }()

	c := &cobra.Command{}
	registerAttributeFlags(c.Flags(), &attrFlags)
	c.SetIn(strings.NewReader("name: nickname\ndisplayName: Nickname\ndataType: STRING\nstatus: ACTIVE\n"))
	_ = c.Flags().Set("filename", "-")
	_ = c.Flags().Set("status", "inactive")
	_ = c.Flags().Set("edit-type", "admin,user")

	base := api.Attribute{Inum: "29DA", Name: "old"}
	attr, err := buildAttribute(c, base)
	if err != nil {
		t.Fatalf("buildAttribute failed: %v", err)
	}

	if attr.Inum != "29DA" {
		t.Errorf("Expected inum to be kept, got %q", attr.Inum)
	}
	if attr.Name != "nickname" {
		t.Errorf("Expected name from the file, got %q", attr.Name)
	}
	if attr.Status != api.AttributeStatusInactive {
		t.Errorf("Expected flag to override the file, got %q", attr.Status)
	}
	if len(attr.EditType) != 2 {
		t.Errorf("Expected two edit types, got %v", attr.EditType)
	}
	if attr.Required {
		t.Error("Expected unset flags to be left alone")
	}
}
