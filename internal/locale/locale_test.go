package locale

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/univmedia/campusnews/internal/backend"
)

func TestGet(t *testing.T) {
	assert.Equal(t, "ar", Get("ar").Code)
	assert.Equal(t, "fr", Get("fr").Code)
	// Unknown codes fall back to Arabic, the reader default.
	assert.Equal(t, "ar", Get("en").Code)
}

func TestDirection(t *testing.T) {
	assert.True(t, Arabic().RTL())
	assert.Equal(t, "rtl", Arabic().Dir)
	assert.False(t, French().RTL())
	assert.Equal(t, "ltr", French().Dir)
}

func TestT_FallsBackToKey(t *testing.T) {
	assert.Equal(t, "Connexion", French().T("nav.login"))
	assert.Equal(t, "الرئيسية", Arabic().T("nav.home"))
	assert.Equal(t, "no.such.key", Arabic().T("no.such.key"))
}

func TestLoginError_StatusMapping(t *testing.T) {
	notFound := &backend.APIError{Status: http.StatusNotFound, Detail: "User not found"}
	unauthorized := &backend.APIError{Status: http.StatusUnauthorized, Detail: "Incorrect password"}
	server := &backend.APIError{Status: http.StatusInternalServerError, Detail: "boom"}

	assert.Equal(t, "المستخدم غير موجود", Arabic().LoginError(notFound))
	assert.Equal(t, "Utilisateur introuvable", French().LoginError(notFound))

	assert.Equal(t, "كلمة المرور غير صحيحة", Arabic().LoginError(unauthorized))
	assert.Equal(t, "Mot de passe incorrect", French().LoginError(unauthorized))

	assert.Equal(t, "Erreur du serveur: boom", French().LoginError(server))
	assert.Equal(t, "خطأ من الخادم: boom", Arabic().LoginError(server))
}

func TestLoginError_EmptyDetail(t *testing.T) {
	err := &backend.APIError{Status: http.StatusBadGateway}
	assert.Equal(t, "Erreur du serveur: Erreur inconnue", French().LoginError(err))
	assert.Equal(t, "خطأ من الخادم: خطأ غير معروف", Arabic().LoginError(err))
}

func TestLoginError_Unreachable(t *testing.T) {
	err := backend.ErrUnreachable
	assert.Contains(t, French().LoginError(err), "Aucune réponse reçue du serveur")
	assert.Contains(t, Arabic().LoginError(err), "لم يتم استلام استجابة من الخادم")
}

func TestLoginError_SetupFailure(t *testing.T) {
	err := errors.New("invalid request")
	assert.Contains(t, French().LoginError(err), "Erreur lors de la configuration de la requête")
	assert.Contains(t, Arabic().LoginError(err), "خطأ في إعداد الطلب")
}

func TestRegisterError(t *testing.T) {
	exists := &backend.APIError{Status: http.StatusBadRequest, Detail: "User already exists"}
	assert.Equal(t, "المستخدم موجود بالفعل", Arabic().RegisterError(exists))
	assert.Equal(t, "L'utilisateur existe déjà", French().RegisterError(exists))

	assert.Equal(t, "فشل في الاتصال بالخادم", Arabic().RegisterError(backend.ErrUnreachable))
	assert.Equal(t, "Échec de la connexion au serveur", French().RegisterError(backend.ErrUnreachable))
}
