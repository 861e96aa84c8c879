package realtime

import (
	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
)

// Room names are a pure function of category and key. Rooms carry no state
// beyond membership.
func RoleRoom(role models.TargetRole) string {
	return "notifications:" + string(role)
}

func UserRoom(userID string) string {
	return "notifications:user:" + userID
}

func ClassRoom(classID string) string {
	return "notifications:class:" + classID
}

func ChatRoom(chatID string) string {
	return "chat:" + chatID
}
