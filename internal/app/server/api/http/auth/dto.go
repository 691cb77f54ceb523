package auth

import "net/http"

type registerInput struct {
	Body registerRequest
}

type registerRequest struct {
	Email    string `json:"email" doc:"Email address, used as the login" format:"email"`
	Name     string `json:"name,omitempty" doc:"Display name"`
	Password string `json:"password" doc:"Password" minLength:"8"`
}

type registerOutput struct {
	Body registerResponse
}

type registerResponse struct {
	ID     int64  `json:"user_id"`
	Status string `json:"status"`
}

type loginInput struct {
	Body loginRequest
}

type loginRequest struct {
	Email    string `json:"email" doc:"Email address" format:"email"`
	Password string `json:"password" doc:"Password" minLength:"1"`
}

type loginOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      loginResponse
}

type loginResponse struct {
	Status string       `json:"status"`
	User   userResponse `json:"user"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type logoutInput struct {
	Cookie string `cookie:"bk_session"`
}

type logoutOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      statusResponse
}

type meOutput struct {
	Body userResponse
}

type changePasswordInput struct {
	Body changePasswordRequest
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" doc:"Current password" minLength:"1"`
	NewPassword string `json:"new_password" doc:"New password" minLength:"8"`
}

type statusOutput struct {
	Body statusResponse
}

type statusResponse struct {
	Status string `json:"status"`
}
