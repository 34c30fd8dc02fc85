// Package advisor answers free-text money questions with rule-based
// responses computed from the user's own spending.
package advisor

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/anoushkasinn/Spend.Sense/internal/analysis"
	"github.com/anoushkasinn/Spend.Sense/internal/cli"
	"github.com/anoushkasinn/Spend.Sense/internal/model"
	"github.com/shopspring/decimal"
)

// Greeting is the first message of a conversation.
const Greeting = "Hi! I'm your SpendSense assistant 🤖 I can help you understand your spending and give personalized advice. What would you like to know?"

// TipsPerAnswer is how many tips a tips answer draws from the pool.
const TipsPerAnswer = 3

// TipPool holds the general money-saving tips.
var TipPool = []string{
	"Wait 24 hours before making purchases over ₹500",
	"Use the 50/30/20 rule: 50% needs, 30% wants, 20% savings",
	"Track every expense, no matter how small",
	"Set a daily spending limit and stick to it",
	"Review your subscriptions - cancel unused ones",
	"Cook at home more often - it's healthier too!",
	"Use public transport or walk for short distances",
}

var suggestions = []string{
	"Why am I always out of money?",
	"How can I save ₹2,000 this month?",
	"Is my food spending too high?",
	"What are my biggest expenses?",
	"Give me tips to reduce spending",
	"Help me create a budget plan",
}

// Suggestions returns questions to offer before the user types anything.
func Suggestions() []string {
	out := make([]string, len(suggestions))
	copy(out, suggestions)
	return out
}

// Shuffler permutes n elements. *rand.Rand from math/rand/v2 satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// Intent is one rule of the responder: any keyword hit selects it.
type Intent struct {
	Name     string
	Keywords []string
	respond  func(r *Responder, ctx Context) string
}

// Responder picks the first intent whose keyword appears in the question.
type Responder struct {
	shuffler Shuffler
	intents  []Intent
}

// Option configures a Responder.
type Option func(*Responder)

// WithShuffler sets the randomness used to pick tips.
func WithShuffler(s Shuffler) Option {
	return func(r *Responder) { r.shuffler = s }
}

// NewResponder creates a responder with the built-in intents.
func NewResponder(opts ...Option) *Responder {
	r := &Responder{
		shuffler: globalShuffler{},
		intents:  defaultIntents(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Intents returns the intent names in evaluation order.
func (r *Responder) Intents() []string {
	names := make([]string, len(r.intents))
	for i, in := range r.intents {
		names[i] = in.Name
	}
	return names
}

// Match returns the name of the intent text selects, or "summary".
func (r *Responder) Match(text string) string {
	if in, ok := r.match(text); ok {
		return in.Name
	}
	return "summary"
}

// Respond answers text using ctx.
func (r *Responder) Respond(text string, ctx Context) string {
	if in, ok := r.match(text); ok {
		return in.respond(r, ctx)
	}
	return summary(ctx)
}

func (r *Responder) match(text string) (Intent, bool) {
	lowered := strings.ToLower(text)
	for _, in := range r.intents {
		for _, kw := range in.Keywords {
			if strings.Contains(lowered, kw) {
				return in, true
			}
		}
	}
	return Intent{}, false
}

// categoryKeywords maps question words to the category they ask about.
var categoryKeywords = []struct {
	code     model.CategoryCode
	keywords []string
}{
	{model.CategoryFood, []string{"food", "eating"}},
	{model.CategoryTransport, []string{"transport", "commute"}},
	{model.CategoryEntertainment, []string{"entertainment", "movies"}},
	{model.CategoryShopping, []string{"shopping"}},
	{model.CategoryEducation, []string{"education"}},
	{model.CategoryHealth, []string{"health", "medical"}},
	{model.CategoryBills, []string{"bills", "utilities"}},
}

func defaultIntents() []Intent {
	intents := []Intent{
		{Name: "status", Keywords: []string{"out of money", "where did my money go"}, respond: status},
		{Name: "saving", Keywords: []string{"save", "saving"}, respond: saving},
	}
	for _, ck := range categoryKeywords {
		code := ck.code
		intents = append(intents, Intent{
			Name:     "category:" + string(code),
			Keywords: ck.keywords,
			respond:  func(_ *Responder, ctx Context) string { return categorySpend(ctx, code) },
		})
	}
	return append(intents,
		Intent{Name: "top_spending", Keywords: []string{"biggest", "top", "most"}, respond: topSpending},
		Intent{Name: "budget_plan", Keywords: []string{"budget", "plan"}, respond: budgetPlan},
		Intent{Name: "tips", Keywords: []string{"tip", "advice", "reduce"}, respond: (*Responder).tips},
	)
}

func status(_ *Responder, ctx Context) string {
	label, total := ctx.TopCategory()
	if ctx.Micro.Count > 0 {
		return fmt.Sprintf("Based on your spending data, you've made %d small purchases under ₹100, totaling %s. "+
			"These \"micro-spends\" often go unnoticed but add up quickly! "+
			"Your biggest expense category is %s at %s. Try setting a daily limit for small purchases.",
			ctx.Micro.Count, cli.FormatCurrency(ctx.Micro.Total), label, cli.FormatCurrency(total))
	}
	return fmt.Sprintf("Your biggest expense category is %s at %s. "+
		"I'd suggest tracking each purchase for a week to identify hidden spending patterns.",
		label, cli.FormatCurrency(total))
}

var (
	microTipThreshold = decimal.NewFromInt(500)
	half              = decimal.NewFromFloat(0.5)
	topShareThreshold = decimal.NewFromFloat(0.3)
)

func saving(_ *Responder, ctx Context) string {
	var tips []string
	if ctx.Micro.Total.GreaterThan(microTipThreshold) {
		tips = append(tips, fmt.Sprintf("Cutting micro-spends by 50%% could save %s",
			cli.FormatCurrency(ctx.Micro.Total.Mul(half))))
	}
	label, total := ctx.TopCategory()
	if ctx.Budget.IsPositive() && total.GreaterThan(ctx.Budget.Mul(topShareThreshold)) {
		pct, _ := analysis.Percent(total, ctx.Budget)
		tips = append(tips, fmt.Sprintf("%s takes %s of your budget - try reducing it by 20%%",
			label, cli.FormatPercent(pct, 0)))
	}
	if ctx.DaysLeft > 0 {
		perDay := ctx.Remaining.Div(decimal.NewFromInt(int64(ctx.DaysLeft)))
		tips = append(tips, fmt.Sprintf("You have %d days left this month. Budget %s/day to stay on track.",
			ctx.DaysLeft, cli.FormatCurrency(perDay)))
	} else {
		tips = append(tips, fmt.Sprintf("This is the last day of the month. You have %s left.",
			cli.FormatCurrency(ctx.Remaining)))
	}

	numbered := make([]string, len(tips))
	for i, tip := range tips {
		numbered[i] = fmt.Sprintf("%d. %s", i+1, tip)
	}
	return "Here's how you can save more:\n\n" + strings.Join(numbered, "\n\n")
}

var highCategoryShare = decimal.NewFromInt(35)

func categorySpend(ctx Context, code model.CategoryCode) string {
	info := model.CategoryInfo(code)
	share, ok := ctx.Category(code)
	if !ok {
		return fmt.Sprintf("I don't see any %s expenses yet. Add some expenses to get personalized insights!",
			strings.ToLower(info.Label))
	}

	verdict := "That's reasonable! Keep tracking to maintain control."
	if share.Percent.GreaterThan(highCategoryShare) {
		verdict = fmt.Sprintf("That's on the higher side! Look for ways to cut back on %s.", strings.ToLower(info.Label))
		if code == model.CategoryFood {
			verdict = "That's on the higher side! Consider meal prepping or cooking at home more often to save ₹1,500-2,000/month."
		}
	}
	return fmt.Sprintf("You've spent %s on %s (%s of total). %s",
		cli.FormatCurrency(share.Total), strings.ToLower(info.Label),
		cli.FormatPercent(share.Percent, 0), verdict)
}

func topSpending(_ *Responder, ctx Context) string {
	if len(ctx.Categories) == 0 {
		return "You haven't added any expenses yet. Start tracking to see where your money goes!"
	}
	top := ctx.Categories
	if len(top) > 3 {
		top = top[:3]
	}
	lines := make([]string, len(top))
	for i, c := range top {
		lines[i] = fmt.Sprintf("%d. %s %s: %s (%d transactions)",
			i+1, c.Info.Icon, c.Info.Label, cli.FormatCurrency(c.Total), c.Count)
	}
	return "Your top spending categories:\n\n" + strings.Join(lines, "\n") +
		"\n\nFocus on reducing your highest category to make the biggest impact!"
}

// PlanShare is one line of the suggested budget split.
type PlanShare struct {
	Icon    string
	Label   string
	Percent int64
}

// BudgetPlan is the suggested split of a monthly budget.
var BudgetPlan = []PlanShare{
	{Icon: "🍕", Label: "Food", Percent: 30},
	{Icon: "🚌", Label: "Transport", Percent: 15},
	{Icon: "🎮", Label: "Entertainment", Percent: 10},
	{Icon: "🛍️", Label: "Shopping", Percent: 15},
	{Icon: "📦", Label: "Other/Savings", Percent: 30},
}

func budgetPlan(_ *Responder, ctx Context) string {
	lines := make([]string, len(BudgetPlan))
	for i, p := range BudgetPlan {
		amount := ctx.Budget.Mul(decimal.NewFromInt(p.Percent)).Div(decimal.NewFromInt(100))
		lines[i] = fmt.Sprintf("%s %s: %s (%d%%)", p.Icon, p.Label, cli.FormatCurrency(amount), p.Percent)
	}
	return fmt.Sprintf("Here's a suggested budget plan based on %s:\n\n%s\n\nAdjust these based on your priorities!",
		cli.FormatCurrency(ctx.Budget), strings.Join(lines, "\n"))
}

func (r *Responder) tips(_ Context) string {
	pool := make([]string, len(TipPool))
	copy(pool, TipPool)
	r.shuffler.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	n := min(TipsPerAnswer, len(pool))
	lines := make([]string, n)
	for i := range n {
		lines[i] = "💡 " + pool[i]
	}
	return "Here are some money-saving tips:\n\n" + strings.Join(lines, "\n\n") +
		"\n\nRemember: Small changes add up to big savings!"
}

func summary(ctx Context) string {
	spentPct := "no budget set"
	if pct, ok := analysis.Percent(ctx.Spent, ctx.Budget); ok && ctx.Budget.IsPositive() {
		spentPct = cli.FormatPercent(pct, 0)
	}
	label, total := ctx.TopCategory()
	return fmt.Sprintf("Here's your spending summary:\n\n"+
		"💰 Budget: %s\n💸 Spent: %s (%s)\n✨ Remaining: %s\n📅 Days left: %d\n\n"+
		"Top category: %s (%s)\n\nWhat specific aspect would you like help with?",
		cli.FormatCurrency(ctx.Budget), cli.FormatCurrency(ctx.Spent), spentPct,
		cli.FormatCurrency(ctx.Remaining), ctx.DaysLeft, label, cli.FormatCurrency(total))
}
