package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// GoalIcon is a selectable savings goal icon.
type GoalIcon struct {
	Icon  string
	Label string
}

// DefaultGoalIcon is used when no or an unknown icon is given.
const DefaultGoalIcon = "🎯"

// GoalIcons lists the icons offered when creating a goal.
var GoalIcons = []GoalIcon{
	{Icon: "🎯", Label: "General"},
	{Icon: "📱", Label: "Phone"},
	{Icon: "💻", Label: "Laptop"},
	{Icon: "🎮", Label: "Gaming"},
	{Icon: "✈️", Label: "Travel"},
	{Icon: "🎓", Label: "Education"},
	{Icon: "🏍️", Label: "Vehicle"},
	{Icon: "💍", Label: "Gift"},
}

// ResolveGoalIcon accepts an icon glyph or its label (case-insensitive) and
// returns the glyph, or DefaultGoalIcon.
func ResolveGoalIcon(s string) string {
	for _, gi := range GoalIcons {
		if s == gi.Icon || strings.EqualFold(s, gi.Label) {
			return gi.Icon
		}
	}
	return DefaultGoalIcon
}

// SavingsGoal is a target the user saves towards.
type SavingsGoal struct {
	CreatedAt    time.Time       `json:"createdAt"`
	Deadline     *Date           `json:"deadline,omitempty"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	SavedAmount  decimal.Decimal `json:"savedAmount"`
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Icon         string          `json:"icon"`
}
