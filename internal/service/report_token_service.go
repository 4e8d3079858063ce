package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const reportTokenType = "report"

var (
	ErrReportTokenInvalid = errors.New("report token invalid")
	ErrReportTokenExpired = errors.New("report token expired")
)

// ReportTokenService firma tokens que autorizan la descarga del PDF de un user_id.
// Con secret vacio queda deshabilitado: no emite tokens ni los exige.
type ReportTokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

type ReportClaims struct {
	UserID    string `json:"uid"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

func NewReportTokenService(secret string, ttl time.Duration) *ReportTokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ReportTokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "creator-quiz",
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Enabled reporta si hay secret configurado.
func (s *ReportTokenService) Enabled() bool {
	return s != nil && len(s.secret) > 0
}

// Issue devuelve un token para userID, o "" si el servicio esta deshabilitado.
func (s *ReportTokenService) Issue(userID string) (string, error) {
	if !s.Enabled() {
		return "", nil
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", ErrReportTokenInvalid
	}
	now := s.now()
	claims := ReportClaims{
		UserID:    userID,
		TokenType: reportTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify comprueba que token sea valido y pertenezca a userID.
func (s *ReportTokenService) Verify(token, userID string) error {
	if !s.Enabled() {
		return nil
	}
	if strings.TrimSpace(token) == "" {
		return ErrReportTokenInvalid
	}
	var claims ReportClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	_, err := parser.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrReportTokenExpired
		}
		return ErrReportTokenInvalid
	}
	if claims.TokenType != reportTokenType || claims.UserID != userID || claims.Subject != userID {
		return ErrReportTokenInvalid
	}
	return nil
}
