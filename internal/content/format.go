package content

import (
	"fmt"
	"strings"
	"time"

	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/models"
)

const separator = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// FormatLead creates the operator notification for a captured lead.
// Plain text: names and answers are user input and must not be parsed as markup.
func FormatLead(lead models.Lead, at time.Time) string {
	var sb strings.Builder

	sb.WriteString(separator + "\n")
	sb.WriteString("🔔 НОВАЯ ЗАЯВКА НА ЗАМЕР\n")
	sb.WriteString(separator + "\n\n")

	sb.WriteString(fmt.Sprintf("👤 Имя: %s\n", lead.Name))
	sb.WriteString(fmt.Sprintf("📞 Телефон: %s\n", lead.Phone))
	sb.WriteString(fmt.Sprintf("🏙 Город: %s\n", lead.Geography))
	sb.WriteString(fmt.Sprintf("🏠 Тип объекта: %s\n", lead.ObjectType))
	sb.WriteString(fmt.Sprintf("🛁 Состояние: %s\n", lead.Condition))
	sb.WriteString(fmt.Sprintf("📐 Метраж: %d м²\n", lead.Metrage))
	sb.WriteString(fmt.Sprintf("🔨 Формат ремонта: %s\n", lead.RepairFormat))
	sb.WriteString(fmt.Sprintf("🔑 Ключи: %s\n", lead.KeysReady))
	sb.WriteString(fmt.Sprintf("📅 Заезд: %s\n", lead.Deadline))
	sb.WriteString(fmt.Sprintf("😟 Страх: %s\n", lead.MainFear))
	sb.WriteString(fmt.Sprintf("💰 Бюджет: %s\n", lead.Budget))
	sb.WriteString(fmt.Sprintf("📱 Источник: %s\n", lead.Source))
	sb.WriteString(fmt.Sprintf("🆔 ID: %d\n", lead.UserID))

	sb.WriteString("\n" + separator + "\n")
	sb.WriteString(fmt.Sprintf("⏰ %s", at.Format("02.01.2006 15:04")))

	return sb.String()
}

// FormatQuestion creates the operator notification for a free-text question
func FormatQuestion(ref string, from models.User, question string) string {
	var sb strings.Builder

	username := "нет"
	if from.Username != "" {
		username = "@" + from.Username
	}

	sb.WriteString(separator + "\n")
	sb.WriteString(fmt.Sprintf("❓ НОВЫЙ ВОПРОС #%s\n", ref))
	sb.WriteString(separator + "\n\n")
	sb.WriteString(fmt.Sprintf("👤 Имя: %s\n", from.DisplayName()))
	sb.WriteString(fmt.Sprintf("🆔 ID: %d\n", from.ID))
	sb.WriteString(fmt.Sprintf("📱 Username: %s\n", username))
	sb.WriteString("📝 Вопрос:\n\n")
	sb.WriteString(question)

	return sb.String()
}
