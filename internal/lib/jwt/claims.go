// Package jwt реализует выпуск и проверку сессионных JWT-токенов.
//
// Токен подписывается единственным алгоритмом HS256 серверным ключом и содержит
// email пользователя, время выпуска и время истечения. Токены не хранятся на сервере:
// их валидность определяется только подписью и сроком действия.
package jwt

import (
	"time"

	"github.com/magabrotheeeer/daily-lens/internal/models"
)

// DefaultTokenTTL время жизни токена по умолчанию.
const DefaultTokenTTL = time.Hour

// Maker описывает интерфейс для выпуска и проверки токенов.
type Maker interface {
	// GenerateToken выпускает подписанный токен для переданной личности.
	GenerateToken(identity models.Identity) (string, error)
	// ParseToken проверяет токен и возвращает личность, для которой он выпущен.
	ParseToken(tokenStr string) (*models.Identity, error)
}

// MakerImpl реализует Maker с использованием секретного ключа и времени жизни токена.
type MakerImpl struct {
	secretKey []byte           // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration    // Время жизни токена.
	now       func() time.Time // Источник текущего времени.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl. Нулевой ttl заменяется на DefaultTokenTTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &MakerImpl{
		secretKey: []byte(secretKey),
		tokenTTL:  ttl,
		now:       time.Now,
	}
}

// WithClock подменяет источник времени, используемый при выпуске и проверке.
func (j *MakerImpl) WithClock(now func() time.Time) *MakerImpl {
	j.now = now
	return j
}
