package models

// FriendRequestOutcome reports what a send-request call actually did.
// Duplicate sends and already-friends cases are informational, not errors.
type FriendRequestOutcome string

const (
	FriendRequestSent    FriendRequestOutcome = "sent"
	FriendRequestPending FriendRequestOutcome = "already_pending"
	AlreadyFriends       FriendRequestOutcome = "already_friends"
)

// FriendInfo describes one friend with live presence data.
type FriendInfo struct {
	Username    string         `json:"username"`
	FullName    string         `json:"full_name"`
	Status      PresenceStatus `json:"status"`
	PictureFile string         `json:"picture_file,omitempty"`
}

// FriendsOverview is the friends page payload: accepted friends plus the
// senders of pending incoming requests.
type FriendsOverview struct {
	Friends          []FriendInfo `json:"friends"`
	IncomingRequests []string     `json:"incoming_requests"`
}
