// Package auth holds the authentication status document printed by
// `jansctl auth whoami`. Its JSON form is stable so scripts can check the
// session without parsing table output.
package auth
