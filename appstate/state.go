package appstate

// StorageKey is the durable-storage key under which the persisted subset
// of the session state is written.
const StorageKey = "lawmasters-app-store"

// Caps for the bounded collections
const (
	MaxNotifications = 50
	MaxRecentMatters = 10
)

// Language codes supported by the dashboard
const (
	LanguageEnglish = "en"
	LanguageHindi   = "hi"
)

// NotificationKind classifies a notification entry
type NotificationKind string

const (
	KindInfo    NotificationKind = "info"
	KindWarning NotificationKind = "warning"
	KindError   NotificationKind = "error"
	KindSuccess NotificationKind = "success"
)

// Timer represents the single running work timer.
// Duration only accumulates on Pause/Stop/explicit update; a consumer that
// wants "current elapsed time" while running must add now - StartTime itself.
type Timer struct {
	MatterID    string `json:"matterId"`
	Description string `json:"description"`
	StartTime   int64  `json:"startTime"` // epoch ms
	Duration    int64  `json:"duration"`  // accumulated ms
}

// Notification is a transient in-session notification entry, newest first
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Timestamp int64            `json:"timestamp"` // epoch ms
	Read      bool             `json:"read"`
}

// Persisted is the subset of session state written to durable storage.
// Everything else resets to its initial value on every fresh load.
type Persisted struct {
	DarkMode      bool     `json:"darkMode"`
	Language      string   `json:"language"`
	BCISafeMode   bool     `json:"bciSafeMode"`
	Timezone      string   `json:"timezone"`
	DateFormat    string   `json:"dateFormat"`
	RecentMatters []string `json:"recentMatters"`
	PinnedItems   []string `json:"pinnedItems"`
}

// DefaultPersisted returns the documented initial values for every persisted field
func DefaultPersisted() Persisted {
	return Persisted{
		DarkMode:      false,
		Language:      LanguageEnglish,
		BCISafeMode:   true,
		Timezone:      "Asia/Kolkata",
		DateFormat:    "DD/MM/YYYY",
		RecentMatters: []string{},
		PinnedItems:   []string{},
	}
}

// Snapshot is a point-in-time copy of the full session state,
// safe to hand to observers and to serialize for clients
type Snapshot struct {
	SidebarOpen   bool           `json:"sidebarOpen"`
	DarkMode      bool           `json:"darkMode"`
	Language      string         `json:"language"`
	BCISafeMode   bool           `json:"bciSafeMode"`
	Timezone      string         `json:"timezone"`
	DateFormat    string         `json:"dateFormat"`
	ActiveTimer   *Timer         `json:"activeTimer,omitempty"`
	Notifications []Notification `json:"notifications"`
	RecentMatters []string       `json:"recentMatters"`
	PinnedItems   []string       `json:"pinnedItems"`
}

// UnreadCount returns the number of unread notifications in the snapshot
func (s Snapshot) UnreadCount() int {
	count := 0
	for _, n := range s.Notifications {
		if !n.Read {
			count++
		}
	}
	return count
}
