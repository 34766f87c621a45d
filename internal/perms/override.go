package perms

import "github.com/lodgeworks/burrow/pkg/blueprint"

// Override is a resolved permission override: a concrete role id (possibly
// the everyone role) with allow and deny bit sets.
type Override struct {
	RoleID string      `json:"role_id"`
	Allow  Permissions `json:"allow,string"`
	Deny   Permissions `json:"deny,string"`
}

// ResolveOverride turns a declared override into a concrete record.
//
// The everyone target wins when a spec somehow carries both targets.
// Returns (nil, false) when neither target resolves, so a dangling role key
// never produces an accidentally wildcard-targeted override. Unrecognized
// flag names in the allow/deny lists are dropped silently.
func ResolveOverride(spec blueprint.OverrideSpec, roleIDByKey map[string]string, everyoneID string) (*Override, bool) {
	var roleID string
	switch {
	case spec.Everyone:
		roleID = everyoneID
	case spec.RoleKey != "":
		roleID = roleIDByKey[spec.RoleKey]
	}
	if roleID == "" {
		return nil, false
	}

	return &Override{
		RoleID: roleID,
		Allow:  FlagSet(spec.Allow),
		Deny:   FlagSet(spec.Deny),
	}, true
}

// ResolveOverrides resolves a list of declared overrides, skipping the ones
// that do not resolve to a target.
func ResolveOverrides(specs []blueprint.OverrideSpec, roleIDByKey map[string]string, everyoneID string) []Override {
	resolved := make([]Override, 0, len(specs))
	for _, spec := range specs {
		if ov, ok := ResolveOverride(spec, roleIDByKey, everyoneID); ok {
			resolved = append(resolved, *ov)
		}
	}
	return resolved
}
