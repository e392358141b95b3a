package discordipc

// User is a Discord account as delivered in READY/CURRENT_USER_UPDATE and
// embedded in lobby members and relationships.
type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar,omitempty"`
	Bot           bool   `json:"bot,omitempty"`
}
