package service

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/xxx-ad-poster/internal/constants"
)

// 简报留空时使用的兜底文案
const (
	fallbackAudience = "adults who want a more exciting private life"
	fallbackPromise  = "add more fun and excitement without drama"
	defaultCTA       = "Tap to explore today’s offers."

	bodyWrapWidth = 70
)

// AdBrief 文案简报
type AdBrief struct {
	OfferName string `json:"offer_name"`
	OfferType string `json:"offer_type"`
	Audience  string `json:"audience"`
	Promise   string `json:"promise"`
	HookStyle string `json:"hook_style"`
}

// AdCopy 生成的文案三件套
type AdCopy struct {
	Headline string `json:"headline"`
	Body     string `json:"body"`
	CTA      string `json:"cta"`
}

// AdVariant 一条待入库的创意变体
type AdVariant struct {
	Title string
	Angle string
	Copy  AdCopy
}

// GenerateAdFromBrief 规则式文案生成器。
// 纯函数：同一份简报永远生成同一份文案，所有措辞保持非露骨、强调隐私与便利。
func GenerateAdFromBrief(brief AdBrief) AdCopy {
	audience := strings.TrimSpace(brief.Audience)
	if audience == "" {
		audience = fallbackAudience
	}
	promise := strings.TrimSpace(brief.Promise)
	if promise == "" {
		promise = fallbackPromise
	}

	categoryPhrase := categoryPhraseFor(brief.OfferType)

	var headline string
	switch brief.HookStyle {
	case constants.HookStyleCuriosity:
		headline = fmt.Sprintf("This %s Offer Is Making Adults Smile", titleWords(brief.OfferType))
	case constants.HookStyleDiscreet:
		headline = "100% Discreet · For Adults Only"
	case constants.HookStyleLimitedTime:
		headline = fmt.Sprintf("%s Deals Ending Soon", titleWords(brief.OfferType))
	case constants.HookStyleAudienceFocused:
		headline = fmt.Sprintf("New For %s", capitalizeFirst(audience))
	default:
		headline = fmt.Sprintf("Explore Trusted %s", titleWords(categoryPhrase))
	}

	bodyLines := []string{
		fmt.Sprintf("%s is for %s who want to %s.", brief.OfferName, audience, promise),
		fmt.Sprintf("Browse trusted %s with fast, discreet service.", categoryPhrase),
		"No pressure, no drama — just adults choosing what works for them.",
	}

	return AdCopy{
		Headline: headline,
		Body:     wrapText(strings.Join(bodyLines, " "), bodyWrapWidth),
		CTA:      defaultCTA,
	}
}

// GenerateVariants 从同一份简报生成 count 条变体。
// Mix 风格按固定顺序轮换四种基础钩子，否则重复同一钩子；
// 多条变体时标题带上角度与序号后缀。
func GenerateVariants(title string, brief AdBrief, count int) []AdVariant {
	if count <= 1 {
		return []AdVariant{{
			Title: title,
			Angle: brief.HookStyle,
			Copy:  GenerateAdFromBrief(brief),
		}}
	}

	mix := brief.HookStyle == constants.HookStyleMix
	variants := make([]AdVariant, 0, count)
	for i := 0; i < count; i++ {
		hook := brief.HookStyle
		if mix {
			hook = constants.BaseHookStyles[i%len(constants.BaseHookStyles)]
		}
		variantBrief := brief
		variantBrief.HookStyle = hook

		variantTitle := fmt.Sprintf("%s v%d", title, i+1)
		if mix {
			variantTitle = fmt.Sprintf("%s – %s v%d", title, hook, i+1)
		}

		variants = append(variants, AdVariant{
			Title: variantTitle,
			Angle: hook,
			Copy:  GenerateAdFromBrief(variantBrief),
		})
	}
	return variants
}

// categoryPhraseFor 按报价类型映射到类目描述（大小写不敏感、精确匹配）
func categoryPhraseFor(offerType string) string {
	switch strings.ToLower(offerType) {
	case "toys", "toy", "products":
		return "adult products"
	case "cams", "live":
		return "live entertainment"
	case "dating", "meets":
		return "adults-only connections"
	default:
		return "adult offers"
	}
}

// titleWords 每个单词首字母大写、其余小写，非字母视为单词边界
func titleWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}

// capitalizeFirst 首字母大写、其余小写
func capitalizeFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	b.WriteRune(unicode.ToUpper(runes[0]))
	for _, r := range runes[1:] {
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// wrapText 贪心折行：按空白拆词后在 width 列内重排，超长单词独占一行
func wrapText(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		if i == 0 {
			b.WriteString(word)
			lineLen = len([]rune(word))
			continue
		}
		wordLen := len([]rune(word))
		if lineLen+1+wordLen > width {
			b.WriteByte('\n')
			b.WriteString(word)
			lineLen = wordLen
			continue
		}
		b.WriteByte(' ')
		b.WriteString(word)
		lineLen += 1 + wordLen
	}
	return b.String()
}
