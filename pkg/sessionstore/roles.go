package sessionstore

import "encoding/json"

// GuestRole is the role assigned to unauthenticated or unprivileged users.
// It never resolves as an effective role.
const GuestRole = "guest"

// Group is a role-bearing group entry on a user profile.
type Group struct {
	Code string `json:"code"`
}

// RoleSource is the normalized form of the heterogeneous role data found on
// user profiles: either a direct role code, an ordered list of groups, or
// nothing at all.
type RoleSource struct {
	Direct string
	Groups []Group
}

// ResolveRole selects the effective role: the direct role when present and
// not guest, otherwise the first non-guest group code. The second return
// value is false when no effective role exists.
func ResolveRole(src RoleSource) (string, bool) {
	if src.Direct != "" && src.Direct != GuestRole {
		return src.Direct, true
	}

	for _, group := range src.Groups {
		if group.Code != "" && group.Code != GuestRole {
			return group.Code, true
		}
	}

	return "", false
}

// ParseRoleSource extracts role data from a raw user profile. Profiles in the
// wild carry the role as a plain string, as an object with a code field, or
// not at all; groups appear as a single object, a list of objects, or a list
// of plain strings. Anything unrecognizable yields an empty source.
func ParseRoleSource(profile json.RawMessage) RoleSource {
	var raw struct {
		Role   json.RawMessage `json:"role"`
		Groups json.RawMessage `json:"groups"`
	}
	if err := json.Unmarshal(profile, &raw); err != nil {
		return RoleSource{}
	}

	src := RoleSource{Direct: parseRole(raw.Role)}
	if src.Direct == "" || src.Direct == GuestRole {
		src.Groups = parseGroups(raw.Groups)
	}
	return src
}

func parseRole(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var direct string
	if err := json.Unmarshal(raw, &direct); err == nil {
		return direct
	}

	var coded Group
	if err := json.Unmarshal(raw, &coded); err == nil {
		return coded.Code
	}

	return ""
}

func parseGroups(raw json.RawMessage) []Group {
	if len(raw) == 0 {
		return nil
	}

	var single Group
	if err := json.Unmarshal(raw, &single); err == nil && single.Code != "" {
		return []Group{single}
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}

	groups := make([]Group, 0, len(list))
	for _, item := range list {
		var code string
		if err := json.Unmarshal(item, &code); err == nil {
			groups = append(groups, Group{Code: code})
			continue
		}

		var group Group
		if err := json.Unmarshal(item, &group); err == nil {
			groups = append(groups, group)
		}
	}
	return groups
}
