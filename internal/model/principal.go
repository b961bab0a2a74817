package model

// Principal represents the authenticated Discord user for the lifetime of a
// request. GuildIDs holds only the guilds that survived the allow-list
// intersection, in the order Discord returned them. GuildRoles may cover a
// subset of those guilds when individual role lookups failed at login.
type Principal struct {
	UserID          string              `json:"user_id"`
	Username        string              `json:"username"`
	Discriminator   string              `json:"discriminator"`
	GuildIDs        []string            `json:"guild_ids"`
	GuildRoles      map[string][]string `json:"guild_roles"`
	CanCreateEvents bool                `json:"can_create_events"`
}

// HomeGuildID returns the guild new events are attributed to.
func (p *Principal) HomeGuildID() string {
	if len(p.GuildIDs) == 0 {
		return ""
	}
	return p.GuildIDs[0]
}

// RolesIn returns the principal's role IDs in the given guild.
func (p *Principal) RolesIn(guildID string) []string {
	return p.GuildRoles[guildID]
}

// IntersectGuilds returns the members of claimed that appear in allowed,
// preserving the order of claimed.
func IntersectGuilds(claimed, allowed []string) []string {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, id := range allowed {
		allowedSet[id] = struct{}{}
	}

	var result []string
	for _, id := range claimed {
		if _, ok := allowedSet[id]; ok {
			result = append(result, id)
		}
	}
	return result
}

// HasAnyRole reports whether held and required share at least one role ID.
// An empty required set always grants access.
func HasAnyRole(held, required []string) bool {
	if len(required) == 0 {
		return true
	}

	heldSet := make(map[string]struct{}, len(held))
	for _, id := range held {
		heldSet[id] = struct{}{}
	}

	for _, id := range required {
		if _, ok := heldSet[id]; ok {
			return true
		}
	}
	return false
}

// CanCreateEvents reports whether any of the principal's guild role sets
// intersects the configured event-role set. An empty configured set means
// everyone may create events.
func CanCreateEvents(guildRoles map[string][]string, eventRoleIDs []string) bool {
	if len(eventRoleIDs) == 0 {
		return true
	}

	for _, roles := range guildRoles {
		if HasAnyRole(roles, eventRoleIDs) {
			return true
		}
	}
	return false
}
