package locale

var arabicLabels = map[string]string{
	"site.title":       "أخبار الجامعة",
	"nav.home":         "الرئيسية",
	"nav.my_posts":     "منشوراتي",
	"nav.login":        "تسجيل الدخول",
	"nav.logout":       "تسجيل الخروج",
	"nav.register":     "إنشاء حساب",
	"form.username":    "اسم المستخدم",
	"form.password":    "كلمة المرور",
	"form.confirm":     "تأكيد كلمة المرور",
	"form.email":       "البريد الإلكتروني",
	"form.title":       "العنوان",
	"form.content":     "المحتوى",
	"form.submit":      "إرسال",
	"post.likes":       "إعجابات",
	"post.visits":      "زيارات",
	"post.like":        "أعجبني",
	"post.similar":     "منشورات مشابهة",
	"post.recommended": "مقترحة لك",
	"post.share":       "مشاركة",
	"posts.empty":      "لا توجد منشورات",
	"error.back_home":  "العودة إلى الرئيسية",
	"error.not_found":  "المنشور غير موجود",
	"error.load":       "فشل في الاتصال بالخادم",
	"validation.required": "جميع الحقول مطلوبة",
	"validation.email":    "البريد الإلكتروني غير صالح",
	"validation.mismatch": "كلمتا المرور غير متطابقتين",
	"register.success":    "تم إنشاء الحساب، يمكنك الآن تسجيل الدخول",
}

var frenchLabels = map[string]string{
	"site.title":        "Tableau de bord — Actualités universitaires",
	"nav.dashboard":     "Tableau de bord",
	"nav.posts":         "Publications",
	"nav.users":         "Utilisateurs",
	"nav.stats":         "Statistiques",
	"nav.login":         "Connexion",
	"nav.logout":        "Déconnexion",
	"form.username":     "Nom d'utilisateur",
	"form.password":     "Mot de passe",
	"form.title":        "Titre",
	"form.content":      "Contenu",
	"form.category":     "Catégorie",
	"form.image":        "Image (URL)",
	"form.submit":       "Envoyer",
	"posts.create":      "Nouvelle publication",
	"posts.edit":        "Modifier",
	"posts.delete":      "Supprimer",
	"posts.empty":       "Aucune publication",
	"users.empty":       "Aucun utilisateur",
	"stats.total_posts": "Publications",
	"stats.total_likes": "J'aime",
	"stats.total_visits": "Visites",
	"stats.export_pdf":  "Exporter en PDF",
	"error.back_home":   "Retour au tableau de bord",
	"error.load":        "Échec de la connexion au serveur",
	"validation.required": "Tous les champs sont obligatoires",
}
