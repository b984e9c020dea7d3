// Package claims извлекает роль и имя пользователя из полезной нагрузки JWT.
//
// Подпись токена не проверяется: результат используется только для навигации
// в интерфейсе, авторизацию выполняет бэкенд.
package claims

import (
	"encoding/json"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Ключи утверждения роли в порядке приоритета.
var roleKeys = []string{
	"http://schemas.microsoft.com/ws/2008/06/identity/claims/role",
	"role",
	"roles",
}

// Ключи утверждения имени в порядке приоритета.
var nameKeys = []string{
	"unique_name",
	"name",
	"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name",
}

var parser = jwt.NewParser(jwt.WithPaddingAllowed())

// RoleFromToken возвращает роль из токена. Если утверждение роли является
// массивом, возвращается его первый элемент.
func RoleFromToken(token string) (string, bool) {
	payload, ok := decode(token)
	if !ok {
		return "", false
	}
	return lookup(payload, roleKeys)
}

// NameFromToken возвращает отображаемое имя пользователя из токена.
func NameFromToken(token string) (string, bool) {
	payload, ok := decode(token)
	if !ok {
		return "", false
	}
	return lookup(payload, nameKeys)
}

func decode(token string) (jwt.MapClaims, bool) {
	if token == "" {
		return nil, false
	}

	// Заголовок и подпись не разбираются, нужна только полезная нагрузка.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, false
	}
	raw, err := parser.DecodeSegment(parts[1])
	if err != nil {
		return nil, false
	}

	payload := jwt.MapClaims{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, false
	}
	return payload, true
}

func lookup(payload jwt.MapClaims, keys []string) (string, bool) {
	for _, key := range keys {
		raw, ok := payload[key]
		if !ok || raw == nil {
			continue
		}
		if v, ok := firstString(raw); ok {
			return v, true
		}
	}
	return "", false
}

func firstString(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, v != ""
	case []any:
		if len(v) == 0 {
			return "", false
		}
		s, ok := v[0].(string)
		return s, ok && s != ""
	}
	return "", false
}
