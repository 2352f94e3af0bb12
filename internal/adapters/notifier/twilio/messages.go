package twilio

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vncsmyrnk/turfvote/internal/core/domain"
)

var sportEmojis = map[domain.Sport]string{
	domain.SportFootball:  "⚽",
	domain.SportCricket:   "🏏",
	domain.SportBadminton: "🏸",
	domain.SportBowling:   "🎳",
	domain.SportOther:     "🎯",
}

var numberEmojis = [domain.MaxSimpleOptions]string{"1️⃣", "2️⃣", "3️⃣", "4️⃣"}

// Formatter renders message bodies. Currency prefixes every price.
type Formatter struct {
	Currency string
}

func (f Formatter) Confirmation(msg domain.Confirmation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ You're confirmed for %s!\n\n", msg.EventName)
	fmt.Fprintf(&b, "📅 %s\n", displayDate(msg.EventDate))
	fmt.Fprintf(&b, "⏰ %s – %s\n", msg.StartTime, msg.EndTime)
	fmt.Fprintf(&b, "📍 %s\n", msg.TurfName)
	if msg.PricePerPlayer.Valid {
		fmt.Fprintf(&b, "💰 %s per player\n", f.price(msg.PricePerPlayer.Decimal))
	}
	if notes := strings.TrimSpace(msg.Notes); notes != "" {
		fmt.Fprintf(&b, "\nℹ️ %s\n", notes)
	}
	b.WriteString("\nSee you there! 🎉")
	return b.String()
}

func (f Formatter) Decline(eventName string, reason domain.DeclineReason) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thanks for voting for %s!\n\n", eventName)
	if reason == domain.DeclineFull {
		b.WriteString("Unfortunately, your time slot filled up quickly.\n\n")
	} else {
		b.WriteString("Unfortunately, the group chose a different time slot.\n\n")
	}
	b.WriteString("Hope to see you next time! ⚽")
	return b.String()
}

// Invitation lists at most four options, numbered for reply voting.
func (f Formatter) Invitation(msg domain.Invitation) string {
	emoji, ok := sportEmojis[msg.Sport]
	if !ok {
		emoji = sportEmojis[domain.SportOther]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", emoji, msg.EventName)
	b.WriteString(displayDate(msg.EventDate))
	if msg.PricePerPlayer.Valid {
		fmt.Fprintf(&b, " · %s", f.price(msg.PricePerPlayer.Decimal))
	}
	b.WriteString("\n\nVote for your preferred turf and time by replying with the number:\n\n")
	for i, opt := range msg.Options {
		if i >= len(numberEmojis) {
			break
		}
		fmt.Fprintf(&b, "%s %s · %s–%s\n", numberEmojis[i], opt.TurfName, opt.StartTime, opt.EndTime)
	}
	if notes := strings.TrimSpace(msg.Notes); notes != "" {
		fmt.Fprintf(&b, "\nℹ️ %s", notes)
	}
	return b.String()
}

func (f Formatter) price(d decimal.Decimal) string {
	return f.Currency + d.StringFixed(2)
}

func displayDate(date string) string {
	day, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return date
	}
	return day.Format("Mon, 2 Jan 2006")
}
