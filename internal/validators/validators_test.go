package validators

import (
	"strings"
	"testing"

	"eventgallery/internal/contracts"
	"eventgallery/internal/shared/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	assert.Equal(t, []string{"El email es requerido"}, Email(""))
	assert.Empty(t, Email("ana@example.com"))
	assert.Equal(t, []string{constants.MsgInvalidEmail}, Email("ana@example"))

	long := strings.Repeat("a", 250) + "@x.com"
	assert.Len(t, Email(long), 1)
}

func TestUsernameReportsEveryFailure(t *testing.T) {
	errs := Username("a!")
	assert.Equal(t, []string{
		constants.MsgUsernameTooShort,
		"El nombre de usuario solo puede contener letras, números, guiones y guiones bajos",
	}, errs)
	assert.Empty(t, Username("ana_maria-1"))
}

func TestPassword(t *testing.T) {
	assert.Empty(t, Password("secret123"))
	assert.Equal(t, []string{
		constants.MsgPasswordTooShort,
		"La contraseña debe contener al menos un número",
	}, Password("abc"))
	assert.Equal(t, []string{"La contraseña debe contener al menos una letra"}, Password("12345678"))
}

func TestEventFields(t *testing.T) {
	assert.Equal(t, []string{"El nombre del evento es requerido"}, EventName("   "))
	assert.Empty(t, EventDate("2025-06-01"))
	assert.Empty(t, EventDate("2025-06-01T18:30:00Z"))
	assert.Equal(t, []string{"Formato de fecha inválido"}, EventDate("mañana"))
	assert.Empty(t, EventTime(""))
	assert.Empty(t, EventTime("23:59"))
	assert.NotEmpty(t, EventTime("24:00"))
	assert.Equal(t, []string{"Categoría de evento inválida"}, EventCategory("party"))
	assert.NotEmpty(t, MaxParticipants(0))
	assert.NotEmpty(t, MaxParticipants(100001))
	assert.Empty(t, MaxParticipants(50))
}

func TestImageFile(t *testing.T) {
	assert.Equal(t, []string{"El archivo de imagen es requerido"}, ImageFile(nil))

	ok := &contracts.File{Name: "a.png", ContentType: "image/png", Data: []byte("x")}
	assert.Empty(t, ImageFile(ok))

	bad := &contracts.File{Name: "a.svg", ContentType: "image/svg+xml", Data: make([]byte, constants.MaxImageSize+1)}
	assert.Equal(t, []string{constants.MsgInvalidImageType, constants.MsgImageTooLarge}, ImageFile(bad))
}

func TestIdentifiers(t *testing.T) {
	assert.Empty(t, UUID("3F2504E0-4F89-11D3-9A0C-0305E82C3301"))
	assert.Equal(t, []string{"Formato de ID inválido"}, UUID("not-a-uuid"))
	assert.Empty(t, InviteCode("AB12CD34"))
	assert.NotEmpty(t, InviteCode("ab12cd34"))
	assert.True(t, IsValidInviteCode("ZZZZ9999"))
	assert.True(t, IsValidTime("07:05"))
	assert.False(t, IsValidUsername("ab"))
	assert.True(t, IsValidEmail("x@y.io"))
}

func TestCreateUserRequest(t *testing.T) {
	res := CreateUserRequest(contracts.CreateUserRequest{Email: "bad", Username: "ok_user", Password: "short"})
	require.False(t, res.Valid)
	assert.Contains(t, res.Errors, "email")
	assert.Contains(t, res.Errors, "password")
	assert.NotContains(t, res.Errors, "username")
	assert.NotContains(t, res.Errors, "fullName")

	valid := CreateUserRequest(contracts.CreateUserRequest{Email: "a@b.co", Username: "ana", Password: "password1"})
	assert.True(t, valid.Valid)
	assert.Empty(t, valid.Errors)
}

func TestLoginRequest(t *testing.T) {
	res := LoginRequest(contracts.LoginRequest{Email: "a@b.co"})
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"La contraseña es requerida"}, res.Errors["password"])
}

func TestCreateEventRequest(t *testing.T) {
	zero := 0
	res := CreateEventRequest(contracts.CreateEventRequest{
		Name:            "Boda",
		Date:            "2025-09-10",
		Time:            "9:00",
		Location:        "",
		Category:        "wedding",
		MaxParticipants: &zero,
	})
	assert.False(t, res.Valid)
	assert.ElementsMatch(t, []string{"time", "location", "maxParticipants"}, keys(res.Errors))
}

func TestUpdateEventRequestChecksOnlyPresentFields(t *testing.T) {
	assert.True(t, UpdateEventRequest(contracts.UpdateEventRequest{}).Valid)

	blank := " "
	res := UpdateEventRequest(contracts.UpdateEventRequest{Name: &blank})
	assert.Equal(t, []string{"El nombre del evento es requerido"}, res.Errors["name"])
}

func TestCommentRequests(t *testing.T) {
	res := CreateCommentRequest(contracts.CreateCommentRequest{ImageID: "x", Content: "  "})
	assert.ElementsMatch(t, []string{"imageId", "content"}, keys(res.Errors))

	long := strings.Repeat("a", constants.MaxCommentLength+1)
	upd := UpdateCommentRequest(contracts.UpdateCommentRequest{Content: long})
	assert.Equal(t, []string{constants.MsgCommentTooLong}, upd.Errors["content"])
}

func TestPagination(t *testing.T) {
	zero, big, ok := 0, 101, 20
	res := Pagination(&zero, &big)
	assert.Equal(t, []string{"El número de página debe ser un entero positivo"}, res.Errors["page"])
	assert.Equal(t, []string{"El límite no puede ser mayor a 100"}, res.Errors["limit"])
	assert.True(t, Pagination(nil, &ok).Valid)
	assert.True(t, Pagination(nil, nil).Valid)
}

func TestSanitizers(t *testing.T) {
	assert.Equal(t, "hola mundo", SanitizeString("  hola \t\n mundo "))
	assert.Equal(t, "ana@example.com", SanitizeEmail(" Ana@Example.COM "))
	assert.Equal(t, "ana_maria", SanitizeUsername(" Ana_Maria"))
}

func keys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
