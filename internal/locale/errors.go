package locale

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/univmedia/campusnews/internal/backend"
)

// LoginError maps a failed login to the human-readable reason the user
// sees, in the bundle's language. The mapping mirrors the status codes
// the auth endpoints document: 404 unknown user, 401 wrong password.
func (l *Locale) LoginError(err error) string {
	var apiErr *backend.APIError
	switch {
	case errors.As(err, &apiErr):
		switch apiErr.Status {
		case http.StatusNotFound:
			if l.Code == "fr" {
				return "Utilisateur introuvable"
			}
			return "المستخدم غير موجود"
		case http.StatusUnauthorized:
			if l.Code == "fr" {
				return "Mot de passe incorrect"
			}
			return "كلمة المرور غير صحيحة"
		default:
			detail := apiErr.Detail
			if detail == "" {
				if l.Code == "fr" {
					detail = "Erreur inconnue"
				} else {
					detail = "خطأ غير معروف"
				}
			}
			if l.Code == "fr" {
				return fmt.Sprintf("Erreur du serveur: %s", detail)
			}
			return fmt.Sprintf("خطأ من الخادم: %s", detail)
		}
	case backend.IsUnreachable(err):
		if l.Code == "fr" {
			return "Aucune réponse reçue du serveur. Assurez-vous que le serveur backend est en cours d'exécution."
		}
		return "لم يتم استلام استجابة من الخادم. تأكد من تشغيل الخادم الخلفي."
	default:
		if l.Code == "fr" {
			return fmt.Sprintf("Erreur lors de la configuration de la requête: %s", err)
		}
		return fmt.Sprintf("خطأ في إعداد الطلب: %s", err)
	}
}

// RegisterError maps a failed registration: 400 means the account
// already exists, anything else reads as a connection failure.
func (l *Locale) RegisterError(err error) string {
	if backend.IsStatus(err, http.StatusBadRequest) {
		if l.Code == "fr" {
			return "L'utilisateur existe déjà"
		}
		return "المستخدم موجود بالفعل"
	}
	if l.Code == "fr" {
		return "Échec de la connexion au serveur"
	}
	return "فشل في الاتصال بالخادم"
}
