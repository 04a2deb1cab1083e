package reply

import (
	"context"
	"hash/fnv"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

type theme int

const (
	themeGreet theme = iota
	themeSchedule
	themePrice
	themeApology
	themeGeneral
)

type variants struct {
	safe, bold, unexpected []string
}

var cannedReplies = map[theme]variants{
	themeGreet: {
		safe:       []string{"Hi! Good to hear from you.", "Hey, what can I do for you?"},
		bold:       []string{"Want to jump on a quick call?", "If you're free, let's get started now."},
		unexpected: []string{"Loading social skills... done. Hello!", "You pick the opening line, I'll keep up."},
	},
	themeSchedule: {
		safe:       []string{"Sure, does 7 tonight work?", "I'm free most of this week, which day suits you?"},
		bold:       []string{"Let's lock in tomorrow at 7, the coffee place by the station.", "How about straight after work today?"},
		unexpected: []string{"Coin toss: heads tonight, tails the weekend.", "I'll bring dessert, you pick the place. Deal?"},
	},
	themePrice: {
		safe:       []string{"We have standard and bundle pricing, which matters more to you?", "Pricing is transparent and can be mixed to fit."},
		bold:       []string{"Sign this week and there's a discount in it.", "Basic or advanced, I can send both quotes now."},
		unexpected: []string{"Forget the numbers for a second: what do you value most?", "Guess the price range and win a prize."},
	},
	themeApology: {
		safe:       []string{"Sorry for the wait, I'm on it.", "Apologies for the slow reply, following up now."},
		bold:       []string{"Give me ten minutes and I'll have an answer.", "I'll close this out first and send you the result."},
		unexpected: []string{"My time management system just rebooted...", "Can I apologise with a bubble tea?"},
	},
	themeGeneral: {
		safe:       []string{"I see where you're coming from, let's take it step by step.", "If it's complicated, let's break it down."},
		bold:       []string{"Let's set action items: I take A, you take B?", "Give me a scope and I'll draft a first version."},
		unexpected: []string{"High-EQ mode enabled, please continue.", "I'll handle the vibes, you make the call?"},
	},
}

var themeKeywords = []struct {
	theme    theme
	keywords []string
}{
	{themeGreet, []string{"hello", "hi", "hey", "你好"}},
	{themeSchedule, []string{"meet", "dinner", "lunch", "tonight", "tomorrow", "together", "约", "一起", "吃饭"}},
	{themePrice, []string{"price", "cost", "quote", "how much", "价格", "多少钱"}},
	{themeApology, []string{"sorry", "late", "apologies", "apologise", "apologize", "抱歉", "对不起", "迟到"}},
}

// detectTheme matches single ASCII keywords against whole words and
// everything else as a substring.
func detectTheme(transcript string) theme {
	s := strings.ToLower(transcript)
	words := map[string]bool{}
	for _, w := range strings.FieldsFunc(s, func(r rune) bool { return !unicode.IsLetter(r) }) {
		words[w] = true
	}
	for _, tk := range themeKeywords {
		for _, kw := range tk.keywords {
			if utf8.RuneCountInString(kw) == len(kw) && !strings.Contains(kw, " ") {
				if words[kw] {
					return tk.theme
				}
			} else if strings.Contains(s, kw) {
				return tk.theme
			}
		}
	}
	return themeGeneral
}

// Static is an offline Provider that picks canned replies by the topic of
// the transcript. The same transcript always gets the same replies.
type Static struct{}

// Suggest implements Provider.
func (Static) Suggest(_ context.Context, transcript string, limit int) ([]Option, error) {
	if strings.TrimSpace(transcript) == "" {
		return []Option{HintOption}, nil
	}
	h := fnv.New32a()
	h.Write([]byte(transcript))
	seed := int(h.Sum32() & 0x7fffffff)

	v := cannedReplies[detectTheme(transcript)]
	pick := func(xs []string) string { return xs[seed%len(xs)] }
	opts := []Option{
		{Title: "Safe", Text: pick(v.safe)},
		{Title: "Bold", Text: pick(v.bold)},
		{Title: "Unexpected", Text: pick(v.unexpected)},
	}
	return limitOptions(opts, limit), nil
}

// New returns a Client when an API key is configured and Static otherwise.
func New(s Settings, logger *slog.Logger) Provider {
	if strings.TrimSpace(s.APIKey) == "" {
		if logger != nil {
			logger.Debug("no api key configured, using offline replies")
		}
		return Static{}
	}
	return NewClient(s, logger)
}
