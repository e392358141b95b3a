package discordipc

// RelationshipType classifies a Discord relationship.
type RelationshipType int

const (
	RelationshipNone RelationshipType = iota
	RelationshipFriend
	RelationshipBlocked
	RelationshipPendingIncoming
	RelationshipPendingOutgoing
	RelationshipImplicit
)

// Presence is a relationship's last-known online status and activity.
type Presence struct {
	Status   string    `json:"status"`
	Activity *Activity `json:"activity,omitempty"`
}

// Relationship is a single entry in the caller's relationship list.
type Relationship struct {
	Type     RelationshipType `json:"type"`
	User     User             `json:"user"`
	Presence Presence         `json:"presence"`
}

// RelationshipUpdatePayload is the RELATIONSHIP_UPDATE event body.
type RelationshipUpdatePayload struct {
	Relationship Relationship `json:"relationship"`
}

// GetRelationships fetches the caller's full relationship list.
func (c *Client) GetRelationships() ([]Relationship, error) {
	var resp struct {
		Relationships []Relationship `json:"relationships"`
	}
	if err := c.call(CmdGetRelationships, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return resp.Relationships, nil
}
