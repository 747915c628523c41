package main

type Config struct {
	APIBaseURL                string `json:"api_base_url"`
	FallbackBaseURL           string `json:"fallback_base_url"`
	Username                  string `json:"username"`
	Password                  string `json:"password"`
	WhatsAppNotificationGroup string `json:"whatsapp_notification_group"`
	DatabasePath              string `json:"database_path"`
}

type AuthTicket struct {
	UserID  string       `json:"user_id"`
	Cookies []AuthCookie `json:"cookies"`
}

type AuthCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
