package validators

import (
	"fmt"
	"strings"

	"eventgallery/internal/contracts"
	"eventgallery/internal/shared/constants"
)

func Email(email string) []string {
	if email == "" {
		return []string{"El email es requerido"}
	}
	var errs []string
	if !passes(email, fmt.Sprintf("max=%d", constants.MaxEmailLength)) {
		errs = append(errs, fmt.Sprintf("El email no puede tener más de %d caracteres", constants.MaxEmailLength))
	}
	if !passes(email, "gallery_email") {
		errs = append(errs, constants.MsgInvalidEmail)
	}
	return errs
}

func Username(username string) []string {
	if username == "" {
		return []string{"El nombre de usuario es requerido"}
	}
	var errs []string
	if !passes(username, fmt.Sprintf("min=%d", constants.MinUsernameLength)) {
		errs = append(errs, constants.MsgUsernameTooShort)
	}
	if !passes(username, fmt.Sprintf("max=%d", constants.MaxUsernameLength)) {
		errs = append(errs, constants.MsgUsernameTooLong)
	}
	if !passes(username, "username") {
		errs = append(errs, "El nombre de usuario solo puede contener letras, números, guiones y guiones bajos")
	}
	return errs
}

// Password requires a length within bounds plus at least one digit and one
// ASCII letter.
func Password(password string) []string {
	if password == "" {
		return []string{"La contraseña es requerida"}
	}
	var errs []string
	if !passes(password, fmt.Sprintf("min=%d", constants.MinPasswordLength)) {
		errs = append(errs, constants.MsgPasswordTooShort)
	}
	if !passes(password, fmt.Sprintf("max=%d", constants.MaxPasswordLength)) {
		errs = append(errs, fmt.Sprintf("La contraseña no puede tener más de %d caracteres", constants.MaxPasswordLength))
	}
	if !passes(password, "hasdigit") {
		errs = append(errs, "La contraseña debe contener al menos un número")
	}
	if !passes(password, "hasletter") {
		errs = append(errs, "La contraseña debe contener al menos una letra")
	}
	return errs
}

func FullName(fullName string) []string {
	if fullName != "" && !passes(fullName, fmt.Sprintf("max=%d", constants.MaxFullNameLength)) {
		return []string{fmt.Sprintf("El nombre completo no puede tener más de %d caracteres", constants.MaxFullNameLength)}
	}
	return nil
}

func EventName(name string) []string {
	if !passes(name, "notblank") {
		return []string{"El nombre del evento es requerido"}
	}
	if !passes(name, fmt.Sprintf("max=%d", constants.MaxEventNameLength)) {
		return []string{fmt.Sprintf("El nombre del evento no puede tener más de %d caracteres", constants.MaxEventNameLength)}
	}
	return nil
}

func EventDescription(description string) []string {
	if description != "" && !passes(description, fmt.Sprintf("max=%d", constants.MaxEventDescriptionLength)) {
		return []string{fmt.Sprintf("La descripción no puede tener más de %d caracteres", constants.MaxEventDescriptionLength)}
	}
	return nil
}

func EventLocation(location string) []string {
	if !passes(location, "notblank") {
		return []string{"La ubicación del evento es requerida"}
	}
	if !passes(location, fmt.Sprintf("max=%d", constants.MaxEventLocationLength)) {
		return []string{fmt.Sprintf("La ubicación no puede tener más de %d caracteres", constants.MaxEventLocationLength)}
	}
	return nil
}

func EventDate(date string) []string {
	if date == "" {
		return []string{"La fecha del evento es requerida"}
	}
	if !passes(date, "eventdate") {
		return []string{"Formato de fecha inválido"}
	}
	return nil
}

func EventTime(value string) []string {
	if value != "" && !passes(value, "time24h") {
		return []string{"Formato de hora inválido. Use HH:MM (formato 24 horas)"}
	}
	return nil
}

func EventCategory(category string) []string {
	if category == "" {
		return []string{"La categoría del evento es requerida"}
	}
	if !passes(category, "category") {
		return []string{"Categoría de evento inválida"}
	}
	return nil
}

// MsgMaxParticipantsInteger is reported when a form value is not a whole number.
const MsgMaxParticipantsInteger = "El número máximo de participantes debe ser un entero"

func MaxParticipants(n int) []string {
	switch {
	case !passes(n, fmt.Sprintf("min=%d", constants.MinMaxParticipants)):
		return []string{"El número máximo de participantes debe ser al menos 1"}
	case !passes(n, fmt.Sprintf("max=%d", constants.MaxMaxParticipants)):
		return []string{"El número máximo de participantes no puede exceder 100,000"}
	}
	return nil
}

func ImageTitle(title string) []string {
	if title != "" && !passes(title, fmt.Sprintf("max=%d", constants.MaxImageTitleLength)) {
		return []string{fmt.Sprintf("El título de la imagen no puede tener más de %d caracteres", constants.MaxImageTitleLength)}
	}
	return nil
}

func ImageDescription(description string) []string {
	if description != "" && !passes(description, fmt.Sprintf("max=%d", constants.MaxImageDescriptionLength)) {
		return []string{fmt.Sprintf("La descripción de la imagen no puede tener más de %d caracteres", constants.MaxImageDescriptionLength)}
	}
	return nil
}

func ImageFile(file *contracts.File) []string {
	if file == nil {
		return []string{"El archivo de imagen es requerido"}
	}
	var errs []string
	if !passes(strings.ToLower(file.ContentType), "imagetype") {
		errs = append(errs, constants.MsgInvalidImageType)
	}
	if !passes(file.Size(), fmt.Sprintf("max=%d", constants.MaxImageSize)) {
		errs = append(errs, constants.MsgImageTooLarge)
	}
	return errs
}

func CommentContent(content string) []string {
	if !passes(content, "notblank") {
		return []string{"El contenido del comentario es requerido"}
	}
	var errs []string
	if !passes(content, fmt.Sprintf("min=%d", constants.MinCommentLength)) {
		errs = append(errs, fmt.Sprintf("El comentario debe tener al menos %d carácter", constants.MinCommentLength))
	}
	if !passes(content, fmt.Sprintf("max=%d", constants.MaxCommentLength)) {
		errs = append(errs, constants.MsgCommentTooLong)
	}
	return errs
}

func UUID(id string) []string {
	if id == "" {
		return []string{"El ID es requerido"}
	}
	if !passes(id, "gallery_uuid") {
		return []string{"Formato de ID inválido"}
	}
	return nil
}

func InviteCode(code string) []string {
	if code == "" {
		return []string{"El código de invitación es requerido"}
	}
	if !passes(code, "invitecode") {
		return []string{"Formato de código de invitación inválido"}
	}
	return nil
}
