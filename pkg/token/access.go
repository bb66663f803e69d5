package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shop_backend/internal/model"
)

var (
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
)

// Codec подписывает и проверяет access токены.
// Ключ, издатель и аудитория фиксируются при создании и не меняются.
type Codec struct {
	secretKey []byte
	issuer    string
	audience  string
	accessTTL time.Duration
}

func NewCodec(secretKey []byte, issuer, audience string, accessTTL time.Duration) (*Codec, error) {
	if len(secretKey) == 0 {
		return nil, errors.New("signing secret is empty")
	}
	if accessTTL <= 0 {
		return nil, errors.New("access token ttl must be positive")
	}

	return &Codec{
		secretKey: secretKey,
		issuer:    issuer,
		audience:  audience,
		accessTTL: accessTTL,
	}, nil
}

// ClaimsFor собирает claims аккаунта: sub, name, given_name, family_name,
// preferred_username и список ролей. Детерминирована и без side effects.
func ClaimsFor(user *model.User) model.UserClaims {
	roles := make([]string, len(user.Roles))
	copy(roles, user.Roles)

	return model.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: user.ID,
		},
		Name:              user.FullName(),
		GivenName:         user.FirstName,
		FamilyName:        user.LastName,
		PreferredUsername: user.Username,
		Roles:             roles,
	}
}

// Encode выпускает подписанный access токен: iss/aud из конфигурации,
// exp = now (UTC) + TTL, подпись HS256
func (c *Codec) Encode(claims model.UserClaims) (string, error) {
	now := time.Now().UTC()
	claims.Issuer = c.issuer
	claims.Audience = jwt.ClaimStrings{c.audience}
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.accessTTL))

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return tok.SignedString(c.secretKey)
}

// Decode проверяет подпись, издателя и аудиторию токена; срок действия
// проверяется, если ignoreExpiry == false. Режим ignoreExpiry нужен только
// рефрешу, чтобы достать identity из недавно истекшего токена.
func (c *Codec) Decode(tokenStr string, ignoreExpiry bool) (*model.UserClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if ignoreExpiry {
		opts = append(opts, jwt.WithoutClaimsValidation())
	} else {
		opts = append(opts,
			jwt.WithIssuer(c.issuer),
			jwt.WithAudience(c.audience),
			jwt.WithExpirationRequired(),
		)
	}

	claims := &model.UserClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		// Алгоритм токена обязан совпадать с настроенным.
		// Токен с "none" или чужим алгоритмом отклоняется до проверки подписи.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignatureInvalid
		}

		return c.secretKey, nil
	}, opts...)
	if err != nil {
		return nil, classifyParseError(err)
	}

	// WithoutClaimsValidation отключает и проверку iss/aud,
	// поэтому в этом режиме проверяем их вручную
	if ignoreExpiry {
		if claims.Issuer != c.issuer || !hasAudience(claims.Audience, c.audience) {
			return nil, fmt.Errorf("%w: issuer or audience mismatch", ErrTokenSignatureInvalid)
		}
	}

	return claims, nil
}

// classifyParseError сводит ошибки jwt к трем видам:
// малформленный токен, неверная подпись/алгоритм/iss/aud, истекший срок
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrTokenSignatureInvalid, err)
	}
}

func hasAudience(aud jwt.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}
