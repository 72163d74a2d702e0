package chat

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"smartshop/domain"
	"smartshop/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
}

type Reply struct {
	Reply       string           `json:"reply"`
	Suggestions []domain.Product `json:"suggestions"`
	FollowUp    []string         `json:"followUp,omitempty"`
	Action      string           `json:"action,omitempty"`
}

type intent struct {
	pattern  *regexp.Regexp
	reply    string
	action   string
	followUp []string
}

// rule-based intent table; first match wins
var intentResponses = []intent{
	{
		pattern:  regexp.MustCompile(`(?i)(shipping|delivery|ship)`),
		reply:    "We offer fast, tracked shipping. Standard delivery is 3-5 business days and is free over $50. Need something sooner? Express options are available at checkout.",
		followUp: []string{"Would you like to see shipping rates?", "Looking for express delivery options?"},
	},
	{
		pattern:  regexp.MustCompile(`(?i)(return|refund|exchange)`),
		reply:    "Hassle-free returns within 30 days in original condition. Refunds are processed to the original payment method within 3-5 business days after inspection.",
		followUp: []string{"Need help with a return?", "Questions about our return policy?"},
	},
	{
		pattern:  regexp.MustCompile(`(?i)(warranty|guarantee)`),
		reply:    "Most products include a 1-year limited warranty covering manufacturing defects. Extended protection plans are available at checkout.",
		followUp: []string{"Want to know about specific product warranties?"},
	},
	{
		pattern:  regexp.MustCompile(`(?i)(support|help|contact)`),
		reply:    "You can reach support via chat here or email support@smartshop.example. We're online 9am-9pm (IST).",
		followUp: []string{"How can I help you today?"},
	},
	{
		pattern:  regexp.MustCompile(`(?i)(cart|shopping cart|my cart)`),
		reply:    "Your cart lives right in the bag icon up top. Ready when you are!",
		action:   "cart",
		followUp: []string{"Ready to checkout?", "Want to continue shopping?"},
	},
	{
		pattern:  regexp.MustCompile(`(?i)(checkout|buy|purchase|order)`),
		reply:    "Head to your cart and hit checkout whenever you're ready. I can help you find anything missing first.",
		action:   "checkout",
		followUp: []string{"Need help with checkout?"},
	},
	{
		pattern:  regexp.MustCompile(`(?i)(track|order status|my order)`),
		reply:    "You can track orders from your account page under Orders. Each shipment gets a tracking link once it leaves the warehouse.",
		action:   "order_tracking",
		followUp: []string{"Need help with anything else?"},
	},
}

var greetingPattern = regexp.MustCompile(`(?i)^(hi|hello|hey|greetings)`)

// price extraction patterns
var (
	rangePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)between\s*\$?(\d+(?:\.\d{1,2})?)\s*(?:and|to|-)\s*\$?(\d+(?:\.\d{1,2})?)`),
		regexp.MustCompile(`(?i)\$?(\d+(?:\.\d{1,2})?)\s*(?:to|-)\s*\$?(\d+(?:\.\d{1,2})?)`),
	}
	underPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:under|below|less than|max)\s*\$?(\d+(?:\.\d{1,2})?)`),
		regexp.MustCompile(`(?i)budget\s*(?:of|is)?\s*\$?(\d+(?:\.\d{1,2})?)`),
	}
	overPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:over|above|more than|min|minimum)\s*\$?(\d+(?:\.\d{1,2})?)`),
	}
	tokenSplitter = regexp.MustCompile(`[^a-z0-9]+`)
)

// categoryHints are product words shoppers actually type; detection is by
// plain substring so "laptops" matches "laptop".
var categoryHints = []string{"laptop", "mouse", "keyboard", "headphones", "monitor", "smartphone", "tablet", "gaming"}

type chatService struct {
	productRepo ProductRepository
}

func NewChatService(productRepo ProductRepository) *chatService {
	return &chatService{
		productRepo: productRepo,
	}
}

// Respond answers a single chat message: greeting, known intent, or a
// product lookup built from the message itself. recentCategories is the
// shopper's recent browsing history, most recent first, used only to
// personalize the greeting.
func (s *chatService) Respond(ctx context.Context, message string, recentCategories []string) (Reply, error) {
	if err := ctx.Err(); err != nil {
		return Reply{}, fmt.Errorf("context error: %w", err)
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return Reply{}, fmt.Errorf("message is required")
	}

	if greetingPattern.MatchString(message) {
		suggestions, err := s.topRated(ctx, 3)
		if err != nil {
			logger.Warn("Failed to load greeting suggestions", "error", err)
			suggestions = []domain.Product{}
		}
		return Reply{
			Reply:       greeting(recentCategories),
			Suggestions: suggestions,
			FollowUp:    []string{"Show me popular products", "Help me find something specific", "View my cart"},
		}, nil
	}

	for _, in := range intentResponses {
		if !in.pattern.MatchString(message) {
			continue
		}

		reply := Reply{
			Reply:       in.reply,
			Suggestions: []domain.Product{},
			FollowUp:    in.followUp,
			Action:      in.action,
		}

		// service intents still get product suggestions when the message
		// carries shopping signal
		if in.action == "" {
			s.attachSuggestions(ctx, message, &reply)
		}
		return reply, nil
	}

	// no intent matched: treat the message as a product query
	reply := Reply{
		Reply:       "Here's what I found for you.",
		Suggestions: []domain.Product{},
		FollowUp:    []string{"Show me popular products", "Refine my search"},
	}
	s.attachSuggestions(ctx, message, &reply)
	if len(reply.Suggestions) == 0 {
		reply.Reply = "I couldn't find matching products, but I'm happy to help you browse. What are you shopping for?"
	}
	return reply, nil
}

func (s *chatService) attachSuggestions(ctx context.Context, message string, reply *Reply) {
	filter := buildFilterFromMessage(message)

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Warn("Failed to load products for chat suggestions", "error", err)
		return
	}

	matched := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if filter.Matches(p) {
			matched = append(matched, p)
		}
	}

	sortByReputation(matched)
	if len(matched) > 3 {
		matched = matched[:3]
	}
	if len(matched) == 0 {
		return
	}

	names := make([]string, 0, len(matched))
	for _, p := range matched {
		names = append(names, p.Name)
	}

	reply.Suggestions = matched
	if reply.Reply == "Here's what I found for you." {
		reply.Reply = fmt.Sprintf("Here are some products that might interest you: %s.", strings.Join(names, ", "))
	} else {
		reply.Reply += fmt.Sprintf(" Also, here are some products that might interest you: %s.", strings.Join(names, ", "))
	}
}

func (s *chatService) topRated(ctx context.Context, limit int) ([]domain.Product, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	inStock := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Stock > 0 {
			inStock = append(inStock, p)
		}
	}

	sortByReputation(inStock)
	if len(inStock) > limit {
		inStock = inStock[:limit]
	}
	return inStock, nil
}

// sortByReputation orders by rating weighted by review volume, the chat
// assistant's quick quality proxy.
func sortByReputation(products []domain.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Rating*float64(products[i].ReviewCount) >
			products[j].Rating*float64(products[j].ReviewCount)
	})
}

func greeting(recentCategories []string) string {
	if len(recentCategories) == 0 {
		return "Hi there! Welcome to SmartShop! I'm here to help you find the perfect products. What are you looking for today?"
	}
	return fmt.Sprintf("Welcome back! I see you've been interested in %s. How can I help you today?", recentCategories[0])
}

// buildFilterFromMessage turns free text into the shared product predicate:
// meaningful tokens, a detected category hint, and any price bounds.
func buildFilterFromMessage(message string) domain.TokenFilter {
	lower := strings.ToLower(message)

	var tokens []string
	for _, tok := range tokenSplitter.Split(lower, -1) {
		if len(tok) > 2 {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) > 10 {
		tokens = tokens[:10]
	}

	var category string
	for _, hint := range categoryHints {
		if strings.Contains(lower, hint) {
			category = hint
			break
		}
	}

	minPrice, maxPrice := extractPriceBounds(message)

	return domain.TokenFilter{
		Tokens:   tokens,
		Category: category,
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	}
}

func extractPriceBounds(message string) (*float64, *float64) {
	var minPrice, maxPrice *float64

	for _, pattern := range rangePatterns {
		if m := pattern.FindStringSubmatch(message); m != nil {
			a, _ := strconv.ParseFloat(m[1], 64)
			b, _ := strconv.ParseFloat(m[2], 64)
			lo, hi := math.Min(a, b), math.Max(a, b)
			minPrice, maxPrice = &lo, &hi
			break
		}
	}

	for _, pattern := range underPatterns {
		if m := pattern.FindStringSubmatch(message); m != nil {
			v, _ := strconv.ParseFloat(m[1], 64)
			if maxPrice == nil || v < *maxPrice {
				maxPrice = &v
			}
			break
		}
	}

	for _, pattern := range overPatterns {
		if m := pattern.FindStringSubmatch(message); m != nil {
			v, _ := strconv.ParseFloat(m[1], 64)
			if minPrice == nil || v > *minPrice {
				minPrice = &v
			}
			break
		}
	}

	return minPrice, maxPrice
}
