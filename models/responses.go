package models

// MessageResponse is the generic acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse is returned by the user routes.
type UserResponse struct {
	Message      string `json:"message"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	SessionToken string `json:"sessionToken,omitempty"`
}

// ChatsResponse is returned by GET /chat/all-chats.
type ChatsResponse struct {
	Message string        `json:"message"`
	Chats   []RoleMessage `json:"chats"`
}

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}
