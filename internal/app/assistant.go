package app

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"asili_experiences/internal/booking"
	"asili_experiences/internal/domain"
)

// LLM is the optional conversational backend. When absent the assistant
// answers from its templates alone, which cover the common questions.
type LLM interface {
	Reply(ctx context.Context, prompt string) (string, error)
}

// Assistant is the chat helper on the marketplace: a small regex intent
// classifier over read-only repository queries. It never mutates anything.
type Assistant struct {
	repo domain.ExperienceRepository
	fmtr booking.Formatter
	llm  LLM // may be nil
}

func NewAssistant(repo domain.ExperienceRepository, fmtr booking.Formatter, llm LLM) *Assistant {
	return &Assistant{repo: repo, fmtr: fmtr, llm: llm}
}

type AssistantReply struct {
	Intent string `json:"intent"`
	Text   string `json:"text"`
}

var (
	reGreeting = regexp.MustCompile(`(?i)^\s*(hi|hello|hey|jambo|habari)\b`)
	rePrice    = regexp.MustCompile(`(?i)\b(price|cost|how much|fee|bei)\b`)
	reCapacity = regexp.MustCompile(`(?i)\b(capacity|group size|how many (people|guests)|spots?|max)\b`)
	reSplit    = regexp.MustCompile(`(?i)\b(split|revenue|share|90|percent|commission|payout)\b`)
	reBrowse   = regexp.MustCompile(`(?i)\b(show|list|browse|what (can|do)|experiences?|safari|activities)\b`)
	reExpID    = regexp.MustCompile(`#?(\d{1,10})\b`)
)

// Ask classifies the message and answers from catalog data. Unrecognized
// messages go to the LLM when one is wired, otherwise to the fallback text.
func (a *Assistant) Ask(ctx context.Context, msg string) (AssistantReply, error) {
	switch {
	case reGreeting.MatchString(msg):
		return AssistantReply{Intent: "greeting",
			Text: "Jambo! Ask me about an experience's price, group size, or how partner payouts work."}, nil

	case rePrice.MatchString(msg):
		return a.priceReply(ctx, msg)

	case reCapacity.MatchString(msg):
		return a.capacityReply(ctx, msg)

	case reSplit.MatchString(msg):
		return AssistantReply{Intent: "split",
			Text: "Conservation partners receive 90% of every booking; the platform keeps the remaining 10% to run the marketplace."}, nil

	case reBrowse.MatchString(msg):
		return a.browseReply(ctx)
	}

	if a.llm != nil {
		text, err := a.llm.Reply(ctx, msg)
		if err == nil && strings.TrimSpace(text) != "" {
			return AssistantReply{Intent: "llm", Text: text}, nil
		}
	}
	return AssistantReply{Intent: "fallback",
		Text: "I can help with prices, group sizes, and partner payouts. Try \"how much is experience #12?\""}, nil
}

func (a *Assistant) priceReply(ctx context.Context, msg string) (AssistantReply, error) {
	ev, ok := a.findExperience(ctx, msg)
	if !ok {
		return AssistantReply{Intent: "price",
			Text: "Tell me which experience you mean, e.g. \"price of experience #12\"."}, nil
	}
	text := fmt.Sprintf("%s costs %s per adult.", title(ev), a.fmtr.Format(ev.BasePrice))
	if ev.PremiumOpt {
		premium := booking.Quote(ev.BasePrice, ev.ChildRule, booking.OptionPremium, 1, 0)
		text += fmt.Sprintf(" The premium option is %s.", a.fmtr.Format(premium.AdultUnit))
	}
	if ev.ChildRule {
		text += " Children pay half the adult price."
	}
	return AssistantReply{Intent: "price", Text: text}, nil
}

func (a *Assistant) capacityReply(ctx context.Context, msg string) (AssistantReply, error) {
	ev, ok := a.findExperience(ctx, msg)
	if !ok {
		return AssistantReply{Intent: "capacity",
			Text: "Tell me which experience you mean, e.g. \"how many people can join #12?\"."}, nil
	}
	if ev.Capacity == nil {
		return AssistantReply{Intent: "capacity",
			Text: fmt.Sprintf("%s has no fixed group limit.", title(ev))}, nil
	}
	return AssistantReply{Intent: "capacity",
		Text: fmt.Sprintf("%s takes up to %d participants per booking.", title(ev), *ev.Capacity)}, nil
}

func (a *Assistant) browseReply(ctx context.Context) (AssistantReply, error) {
	page, err := a.repo.ListExperiences(ctx, domain.ExperiencesQuery{Lang: "en", Limit: 5})
	if err != nil || len(page.Items) == 0 {
		return AssistantReply{Intent: "browse",
			Text: "I couldn't load the catalog just now; please try the experiences page."}, nil
	}
	var b strings.Builder
	b.WriteString("A few experiences you might like:\n")
	for _, ev := range page.Items {
		fmt.Fprintf(&b, "- #%d %s (%s per adult)\n", ev.ID, title(ev), a.fmtr.Format(ev.BasePrice))
	}
	return AssistantReply{Intent: "browse", Text: b.String()}, nil
}

// findExperience resolves "#12"-style references in the message.
func (a *Assistant) findExperience(ctx context.Context, msg string) (domain.ExperienceView, bool) {
	m := reExpID.FindStringSubmatch(msg)
	if m == nil {
		return domain.ExperienceView{}, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return domain.ExperienceView{}, false
	}
	ev, err := a.repo.GetExperience(ctx, id, "en")
	if err != nil {
		return domain.ExperienceView{}, false
	}
	return ev, true
}

func title(ev domain.ExperienceView) string {
	if ev.Title != nil && *ev.Title != "" {
		return *ev.Title
	}
	return fmt.Sprintf("experience #%d", ev.ID)
}
