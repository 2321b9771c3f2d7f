package entity

// Settings configuración global del proceso (única, no por usuario).
// El esquema es total: todo campo existe siempre; el merge con los valores
// por defecto al cargar rellena cualquier clave ausente del blob persistido.
// Los tags JSON siguen el esquema del blob persistido.
type Settings struct {
	Currency      string               `json:"currency"`
	Language      string               `json:"language"`
	Theme         string               `json:"theme"` // light, dark, auto
	Notifications NotificationSettings `json:"notifications"`
	Colors        ColorPalette         `json:"colors"`
	Display       DisplaySettings      `json:"display"`
	Security      SecuritySettings     `json:"security"`
	Backup        BackupSettings       `json:"backup"`
}

// NotificationSettings interruptores de canales de notificación.
type NotificationSettings struct {
	Sound    bool `json:"sound"`
	Browser  bool `json:"browser"`
	Email    bool `json:"email"`
	LowStock bool `json:"lowStock"`
	Expiry   bool `json:"expiry"`
}

// ColorPalette colores con nombre usados por la capa de presentación.
type ColorPalette struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
	Success   string `json:"success"`
	Warning   string `json:"warning"`
	Error     string `json:"error"`
	Info      string `json:"info"`
}

// DisplaySettings opciones de presentación.
type DisplaySettings struct {
	ItemsPerPage   int  `json:"itemsPerPage"`
	ShowAnimations bool `json:"showAnimations"`
	CompactMode    bool `json:"compactMode"`
}

// SecuritySettings opciones de seguridad. Encryption es solo informativo:
// no se cifra nada en esta versión.
type SecuritySettings struct {
	AutoLockTime  string `json:"autoLockTime"` // minutos, como texto
	RememberLogin bool   `json:"rememberLogin"`
	Encryption    bool   `json:"encryption"`
}

// BackupSettings preferencias de respaldo.
type BackupSettings struct {
	AutoBackup bool   `json:"autoBackup"`
	Interval   string `json:"backupInterval"` // daily, weekly, monthly
}

// DefaultLanguage idioma usado cuando el blob persistido no trae uno.
const DefaultLanguage = "es"

// DefaultSettings devuelve la configuración por defecto codificada en el binario.
// Es la base del merge al cargar el blob persistido.
func DefaultSettings() Settings {
	return Settings{
		Currency: "COP",
		Language: DefaultLanguage,
		Theme:    "light",
		Notifications: NotificationSettings{
			Sound:    true,
			Browser:  true,
			Email:    false,
			LowStock: true,
			Expiry:   true,
		},
		Colors: ColorPalette{
			Primary:   "#3B82F6",
			Secondary: "#8B5CF6",
			Accent:    "#10B981",
			Success:   "#059669",
			Warning:   "#D97706",
			Error:     "#DC2626",
			Info:      "#0EA5E9",
		},
		Display: DisplaySettings{
			ItemsPerPage:   10,
			ShowAnimations: true,
			CompactMode:    false,
		},
		Security: SecuritySettings{
			AutoLockTime:  "30",
			RememberLogin: true,
			Encryption:    false,
		},
		Backup: BackupSettings{
			AutoBackup: true,
			Interval:   "daily",
		},
	}
}
