// Package jsondoc parses the users/sessions JSON document format. Any
// per-record validation failure aggregates into a single error listing
// every offending index; syntactic JSON failure is its own error.
package jsondoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"dataengine/internal/types"
)

// User is a validated user record.
type User struct {
	ID           int64
	Name         string
	Email        string
	Active       bool
	LastAccess   *string
}

// Session is a validated session record.
type Session struct {
	UserID          int64
	Start           *string
	DurationSeconds *float64
	PagesVisited    *int64
	Actions         []string
}

// Document is the parsed, validated root object.
type Document struct {
	Users    []User
	Sessions []Session
}

// Outcome is the parser's closed-sum return value. jsondoc has no partial
// mode — a validation failure aggregates every offending record into one
// error, as specified.
type Outcome struct {
	Kind types.Status
	Doc  Document
	Err  string
}

type rawUser struct {
	ID           json.Number `json:"id"`
	Nombre       *string     `json:"nombre"`
	Email        *string     `json:"email"`
	Activo       *bool       `json:"activo"`
	UltimoAcceso *string     `json:"ultimo_acceso"`
}

type rawSession struct {
	UsuarioID        json.Number     `json:"usuario_id"`
	Inicio           *string         `json:"inicio"`
	DuracionSegundos *json.Number    `json:"duracion_segundos"`
	PaginasVisitadas *json.Number    `json:"paginas_visitadas"`
	Acciones         json.RawMessage `json:"acciones"`
}

type rawRoot struct {
	Usuarios []json.RawMessage `json:"usuarios"`
	Sesiones []json.RawMessage `json:"sesiones"`
}

// Parse reads, decodes, and validates the file at path.
func Parse(path string) Outcome {
	data, err := os.ReadFile(path)
	if err != nil {
		return Outcome{Kind: types.StatusError, Err: fmt.Sprintf("failed to read file: %v", err)}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root rawRoot
	if err := dec.Decode(&root); err != nil {
		return Outcome{Kind: types.StatusError, Err: fmt.Sprintf("invalid json: %v", err)}
	}
	if root.Usuarios == nil || root.Sesiones == nil {
		return Outcome{Kind: types.StatusError, Err: "root object must contain usuarios and sesiones arrays"}
	}

	var reasons []string
	var users []User
	for i, raw := range root.Usuarios {
		u, reason := parseUser(raw)
		if reason != "" {
			reasons = append(reasons, fmt.Sprintf("usuarios[%d]: %s", i, reason))
			continue
		}
		users = append(users, u)
	}

	var sessions []Session
	for i, raw := range root.Sesiones {
		s, reason := parseSession(raw)
		if reason != "" {
			reasons = append(reasons, fmt.Sprintf("sesiones[%d]: %s", i, reason))
			continue
		}
		sessions = append(sessions, s)
	}

	if len(reasons) > 0 {
		return Outcome{Kind: types.StatusError, Err: strings.Join(reasons, "; ")}
	}

	return Outcome{Kind: types.StatusOK, Doc: Document{Users: users, Sessions: sessions}}
}

func parseUser(raw json.RawMessage) (User, string) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var ru rawUser
	if err := dec.Decode(&ru); err != nil {
		return User{}, fmt.Sprintf("malformed record: %v", err)
	}
	id, err := ru.ID.Int64()
	if err != nil {
		return User{}, "id must be an integer"
	}
	if ru.Nombre == nil {
		return User{}, "nombre is required"
	}
	if ru.Email == nil {
		return User{}, "email is required"
	}
	if ru.Activo == nil {
		return User{}, "activo is required"
	}
	return User{
		ID:         id,
		Name:       *ru.Nombre,
		Email:      *ru.Email,
		Active:     *ru.Activo,
		LastAccess: ru.UltimoAcceso,
	}, ""
}

func parseSession(raw json.RawMessage) (Session, string) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var rs rawSession
	if err := dec.Decode(&rs); err != nil {
		return Session{}, fmt.Sprintf("malformed record: %v", err)
	}
	userID, err := rs.UsuarioID.Int64()
	if err != nil {
		return Session{}, "usuario_id must be an integer"
	}

	var duration *float64
	if rs.DuracionSegundos != nil {
		f, err := rs.DuracionSegundos.Float64()
		if err != nil {
			return Session{}, "duracion_segundos must be numeric"
		}
		duration = &f
	}

	var pages *int64
	if rs.PaginasVisitadas != nil {
		n, err := rs.PaginasVisitadas.Int64()
		if err != nil {
			return Session{}, "paginas_visitadas must be an integer"
		}
		pages = &n
	}

	actions := coerceActions(rs.Acciones)

	return Session{
		UserID:          userID,
		Start:           rs.Inicio,
		DurationSeconds: duration,
		PagesVisited:    pages,
		Actions:         actions,
	}, ""
}

// coerceActions implements the spec's "acciones is coerced to an empty
// list if absent or not a list" rule: absent, null, and any non-array JSON
// value (a string, a number, an object, ...) all become []string{} rather
// than failing the record.
func coerceActions(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return []string{}
	}
	var actions []string
	if err := json.Unmarshal(raw, &actions); err != nil {
		return []string{}
	}
	return actions
}
