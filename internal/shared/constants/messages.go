package constants

import "fmt"

// Error messages shown to end users.
var (
	MsgInvalidCredentials    = "Email o contraseña incorrectos"
	MsgEmailAlreadyExists    = "Este email ya está registrado"
	MsgUsernameAlreadyExists = "Este nombre de usuario ya está en uso"
	MsgUnauthorized          = "Debes iniciar sesión para realizar esta acción"
	MsgForbidden             = "No tienes permisos para realizar esta acción"
	MsgSessionExpired        = "Tu sesión ha expirado, por favor inicia sesión nuevamente"

	MsgInvalidEmail       = "Formato de email inválido"
	MsgPasswordTooShort   = fmt.Sprintf("La contraseña debe tener al menos %d caracteres", MinPasswordLength)
	MsgUsernameTooShort   = fmt.Sprintf("El nombre de usuario debe tener al menos %d caracteres", MinUsernameLength)
	MsgUsernameTooLong    = fmt.Sprintf("El nombre de usuario no puede tener más de %d caracteres", MaxUsernameLength)
	MsgEventNotFound      = "Evento no encontrado"
	MsgEventFull          = "El evento ha alcanzado su capacidad máxima"
	MsgAlreadyJoined      = "Ya eres participante de este evento"
	MsgNotParticipant     = "No eres participante de este evento"
	MsgInvalidInviteCode  = "Código de invitación inválido"
	MsgNotEventCreator    = "Solo el creador del evento puede realizar esta acción"
	MsgCreatorCannotLeave = "El creador no puede salir de su propio evento"
	MsgPrivateEvent       = "Este evento es privado, usa el código de invitación"

	MsgImageNotFound    = "Imagen no encontrada"
	MsgImageTooLarge    = fmt.Sprintf("La imagen no puede superar los %d MB", MaxImageSize/1024/1024)
	MsgInvalidImageType = "Tipo de archivo no permitido. Usa JPG, PNG, GIF o WEBP"
	MsgNotImageOwner    = "Solo el propietario de la imagen puede realizar esta acción"

	MsgCommentNotFound  = "Comentario no encontrado"
	MsgCommentTooLong   = fmt.Sprintf("El comentario no puede tener más de %d caracteres", MaxCommentLength)
	MsgNotCommentOwner  = "Solo el autor del comentario puede realizar esta acción"
	MsgUserNotFound     = "Usuario no encontrado"
	MsgInternalError    = "Error interno del servidor"
	MsgBadRequest       = "Solicitud inválida"
	MsgNotFound         = "Recurso no encontrado"
	MsgValidationError  = "Error de validación"
	MsgUploadFailed     = "Error al subir el archivo"
	MsgFileRequired     = "Debe proporcionar un archivo"
	MsgDatabaseError    = "Error de base de datos"
	MsgDuplicateEntry   = "El registro ya existe"
	MsgTooManyRequests  = "Demasiadas solicitudes, inténtalo más tarde"
	MsgInvalidJSONReply = "Invalid JSON response from server"

	MsgSearchQueryRequired = "Debes indicar un término de búsqueda"
	MsgInvalidSearchType   = "Tipo de búsqueda inválido, usa all, events, images o users"
)

// Success messages.
const (
	MsgRegisterSuccess = "Cuenta creada exitosamente"
	MsgLoginSuccess    = "Sesión iniciada correctamente"
	MsgLogoutSuccess   = "Sesión cerrada correctamente"

	MsgEventCreated = "Evento creado exitosamente"
	MsgEventUpdated = "Evento actualizado exitosamente"
	MsgEventDeleted = "Evento eliminado exitosamente"
	MsgEventJoined  = "Te has unido al evento exitosamente"
	MsgEventLeft    = "Has salido del evento"

	MsgImageUploaded = "Imagen subida exitosamente"
	MsgImageUpdated  = "Imagen actualizada exitosamente"
	MsgImageDeleted  = "Imagen eliminada exitosamente"
	MsgImageLiked    = "Te gusta esta imagen"
	MsgImageUnliked  = "Ya no te gusta esta imagen"

	MsgCommentCreated = "Comentario añadido exitosamente"
	MsgCommentUpdated = "Comentario actualizado exitosamente"
	MsgCommentDeleted = "Comentario eliminado exitosamente"
)
