package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"jansctl/internal/api"
	"jansctl/internal/cli"
	"jansctl/internal/views"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"
)

// attributeFlags are the fields settable from the command line. Only flags
// that were given are applied.
type attributeFlags struct {
	file          string
	name          string
	displayName   string
	description   string
	dataType      string
	status        string
	claimName     string
	editType      []string
	viewType      []string
	multiValued   bool
	required      bool
	adminCanEdit  bool
	userCanAccess bool
}

var attrFlags attributeFlags

// createCmd represents the create command group
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a resource",
	Long: `Create a resource on the Jans server.

Available resource types:
  attribute - Create a user attribute from flags or a definition file`,
}

var createAttributeCmd = &cobra.Command{
	Use:     "attribute",
	Aliases: []string{"attr"},
	Short:   "Create a user attribute",
	Long: `Create a user attribute. Fields come from a YAML or JSON definition
(-f, "-" reads stdin) and are overridden by the flags given.

Examples:
  jansctl create attribute --name nickname --display-name Nickname --data-type STRING
  jansctl create attribute -f attribute.yaml
  cat attribute.json | jansctl create attribute -f - --status INACTIVE`,
	Args: cobra.NoArgs,
	RunE: runCreateAttribute,
}

// editCmd represents the edit command group
var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Change a resource",
	Long: `Change a resource on the Jans server.

Available resource types:
  attribute - Change fields of an existing user attribute`,
}

var editAttributeCmd = &cobra.Command{
	Use:     "attribute <inum>",
	Aliases: []string{"attr"},
	Short:   "Change a user attribute",
	Long: `Fetch a user attribute, apply the definition file and flags given and
save it.

Examples:
  jansctl edit attribute 29DA --status INACTIVE
  jansctl edit attribute 29DA --edit-type admin,user --required`,
	Args: cobra.ExactArgs(1),
	RunE: runEditAttribute,
}

func init() {
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(editCmd)
	createCmd.AddCommand(createAttributeCmd)
	editCmd.AddCommand(editAttributeCmd)
	cli.RegisterCommonFlags(createCmd, &apiFlags)
	cli.RegisterCommonFlags(editCmd, &apiFlags)

	for _, c := range []*cobra.Command{createAttributeCmd, editAttributeCmd} {
		registerAttributeFlags(c.Flags(), &attrFlags)
	}
}

func registerAttributeFlags(fs *pflag.FlagSet, f *attributeFlags) {
	fs.StringVarP(&f.file, "filename", "f", "", `YAML or JSON attribute definition ("-" for stdin)`)
	fs.StringVar(&f.name, "name", "", "Attribute name")
	fs.StringVar(&f.displayName, "display-name", "", "Display name")
	fs.StringVar(&f.description, "description", "", "Description")
	fs.StringVar(&f.dataType, "data-type", "", fmt.Sprintf("Data type (%s)", strings.Join(api.AttributeDataTypes, ", ")))
	fs.StringVar(&f.status, "status", "", "Status (ACTIVE, INACTIVE)")
	fs.StringVar(&f.claimName, "claim-name", "", "OpenID claim name")
	fs.StringSliceVar(&f.editType, "edit-type", nil, "Roles that may edit the attribute (admin, user)")
	fs.StringSliceVar(&f.viewType, "view-type", nil, "Roles that may view the attribute (admin, user)")
	fs.BoolVar(&f.multiValued, "multi-valued", false, "Attribute holds multiple values")
	fs.BoolVar(&f.required, "required", false, "Attribute is required")
	fs.BoolVar(&f.adminCanEdit, "admin-can-edit", false, "Administrators may edit the attribute")
	fs.BoolVar(&f.userCanAccess, "user-can-access", false, "Users may access the attribute")
}

// readAttributeFile decodes a definition; "-" reads in.
func readAttributeFile(path string, in io.Reader) (api.Attribute, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return api.Attribute{}, fmt.Errorf("failed to read attribute definition: %w", err)
	}

	var attr api.Attribute
	if err := yaml.Unmarshal(data, &attr); err != nil {
		return api.Attribute{}, fmt.Errorf("failed to parse attribute definition: %w", err)
	}
	return attr, nil
}

// apply copies the flags that were set onto attr.
func (f *attributeFlags) apply(fs *pflag.FlagSet, attr *api.Attribute) {
	set := func(name string, fn func()) {
		if fs.Changed(name) {
			fn()
		}
	}
	set("name", func() { attr.Name = f.name })
	set("display-name", func() { attr.DisplayName = f.displayName })
	set("description", func() { attr.Description = f.description })
	set("data-type", func() { attr.DataType = strings.ToUpper(f.dataType) })
	set("status", func() { attr.Status = strings.ToUpper(f.status) })
	set("claim-name", func() { attr.ClaimName = f.claimName })
	set("edit-type", func() { attr.EditType = f.editType })
	set("view-type", func() { attr.ViewType = f.viewType })
	set("multi-valued", func() { attr.MultiValued = f.multiValued })
	set("required", func() { attr.Required = f.required })
	set("admin-can-edit", func() { attr.AdminCanEdit = f.adminCanEdit })
	set("user-can-access", func() { attr.UserCanAccess = f.userCanAccess })
}

// validateAttribute checks the fields the server requires.
func validateAttribute(attr api.Attribute) error {
	var missing []string
	if attr.Name == "" {
		missing = append(missing, "name")
	}
	if attr.DisplayName == "" {
		missing = append(missing, "display-name")
	}
	if attr.DataType == "" {
		missing = append(missing, "data-type")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	if !contains(api.AttributeDataTypes, attr.DataType) {
		return fmt.Errorf("invalid data type %q (valid: %s)", attr.DataType, strings.Join(api.AttributeDataTypes, ", "))
	}
	if attr.Status != api.AttributeStatusActive && attr.Status != api.AttributeStatusInactive {
		return fmt.Errorf("invalid status %q (valid: %s, %s)", attr.Status, api.AttributeStatusActive, api.AttributeStatusInactive)
	}
	return nil
}

// buildAttribute merges the definition file and the flags over base.
func buildAttribute(cmd *cobra.Command, base api.Attribute) (api.Attribute, error) {
	attr := base
	if attrFlags.file != "" {
		fromFile, err := readAttributeFile(attrFlags.file, cmd.InOrStdin())
		if err != nil {
			return api.Attribute{}, err
		}
		fromFile.Inum = base.Inum
		attr = fromFile
	}
	attrFlags.apply(cmd.Flags(), &attr)
	return attr, nil
}

func runCreateAttribute(cmd *cobra.Command, args []string) error {
	attr, err := buildAttribute(cmd, api.Attribute{})
	if err != nil {
		return err
	}
	if attr.Status == "" {
		attr.Status = api.AttributeStatusActive
	}
	attr.Inum = ""
	if err := validateAttribute(attr); err != nil {
		return err
	}

	return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
		created, err := rt.svc.AddAttribute(ctx, attr)
		if err != nil {
			return err
		}
		return printAttribute(cmd, rt, created, "Created")
	})
}

func runEditAttribute(cmd *cobra.Command, args []string) error {
	inum := args[0]

	return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
		e, err := rt.svc.Get(ctx, api.KindAttribute, inum)
		if err != nil {
			return err
		}
		attr, err := buildAttribute(cmd, e.(api.Attribute))
		if err != nil {
			return err
		}
		attr.Inum = inum
		if err := validateAttribute(attr); err != nil {
			return err
		}

		saved, err := rt.svc.EditAttribute(ctx, attr)
		if err != nil {
			return err
		}
		return printAttribute(cmd, rt, saved, "Saved")
	})
}

// printAttribute prints the stored attribute, or a success line for tables.
func printAttribute(cmd *cobra.Command, rt *runtime, attr *api.Attribute, verb string) error {
	out := cmd.OutOrStdout()
	if attr == nil {
		fmt.Fprintln(out, cli.FormatSuccess(verb+" attribute"))
		return nil
	}
	if cli.OutputFormat(rt.settings.Output).IsTable() {
		if !apiFlags.Quiet {
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%s attribute %s (%s)", verb, attr.Name, attr.Inum)))
		}
		tbl := views.Detail(*attr, rt.svc.State().Auth.Session.Permissions)
		return rt.print(out, attr, &tbl)
	}
	return rt.print(out, attr, nil)
}
