package converter

import (
	"shop_backend/internal/api/dto/auth"
	"shop_backend/internal/model"
)

func ToTokenResponse(data model.AuthData) auth.TokenResponse {
	return auth.TokenResponse{
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
	}
}
