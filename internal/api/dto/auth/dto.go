package auth

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	AccessToken  string `json:"accessToken"`  // Истекший, но корректно подписанный access токен
	RefreshToken string `json:"refreshToken"` // Живой refresh токен
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type ForgotPasswordRequest struct {
	Email     string `json:"email"`
	ClientURI string `json:"clientURI"` // Адрес страницы сброса, в письмо попадет ссылка на нее
}

type ResetPasswordRequest struct {
	Email           string `json:"email"`
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}
