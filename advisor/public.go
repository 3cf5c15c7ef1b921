package advisor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/chiwei/networth"
	"github.com/chiwei/networth/docs"
	"github.com/chiwei/networth/renderer"
	"github.com/chiwei/networth/yahoo"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand his net worth: what he owns across
			currencies, what it is worth today, and how it performed.

			Devise a plan of questions to ask each expert and come up with the best response
			to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst returns the market analyst expert, grounded by web search.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is a market analyst,
		very well aware of financial products, markets and institutions,
		and of the latest news about companies and currencies.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a market analyst. You can search and find about anything related to
			financial institutions, companies, markets and currencies. You leverage Google
			Search to ground your assertions in a solid truth, and you know how to relate
			the latest news to the user's request.
				`}}},
		},
	}
}

// NewBookkeeper returns the expert in charge of reading the user's portfolio.
func NewBookkeeper() *Expert {
	lib := []Function{NetWorth, HoldingDetail}

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. He is in charge of reading the user's portfolio:
		holdings across currencies, their valuation, and their performance.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a bookkeeper in charge of the user's portfolio.
				You know how to use the Tools to extract relevant information about the
				user's holdings and net worth. Other experts might ask you questions,
				pardon their approximative language and figure out what they meant.

				Below is how the valuation figures you report are computed:

				` + must(docs.GetTopic("accounting"))}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

var NetWorth = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "NetWorth",
		Description: `NetWorth values the whole portfolio at current market prices and rates.

		It reports the net worth, total profit and loss, cost basis, pending items,
		and one row per holding.`,
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted summary of the portfolio valuation.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		report, err := summaryReport()
		if err != nil {
			return errResponse(id, "NetWorth", err)
		}
		return &genai.FunctionResponse{
			ID:   id,
			Name: "NetWorth",
			Response: map[string]any{
				"output": report,
			},
		}
	},
}

var HoldingDetail = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "HoldingDetail",
		Description: `HoldingDetail values one holding and lists its transactions,
		including lifetime performance when the history allows it.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"holding": {
					Type:        genai.TypeString,
					Description: "The ID of the holding to detail.",
				},
			},
			Required: []string{"holding"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted report of one holding.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		arg, ok := args["holding"].(string)
		if !ok {
			return errResponse(id, "HoldingDetail", fmt.Errorf("argument 'holding' is not a string but %T", args["holding"]))
		}
		report, err := holdingReport(arg)
		if err != nil {
			return errResponse(id, "HoldingDetail", err)
		}
		return &genai.FunctionResponse{
			ID:   id,
			Name: "HoldingDetail",
			Response: map[string]any{
				"output": report,
			},
		}
	},
}

const (
	holdingsFile     = "holdings.jsonl"
	transactionsFile = "transactions.jsonl"
)

// loadLedger decodes the ledger from the default files in the working
// directory. A missing transactions file is an empty log.
func loadLedger() (*networth.Ledger, error) {
	hf, err := os.Open(holdingsFile)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", holdingsFile, err)
	}
	defer hf.Close()

	var txs io.Reader = strings.NewReader("")
	tf, err := os.Open(transactionsFile)
	if err == nil {
		defer tf.Close()
		txs = tf
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not open %q: %w", transactionsFile, err)
	}

	return networth.DecodeLedger(hf, txs)
}

// valueLedger refreshes market data and computes the current views.
func valueLedger(l *networth.Ledger) ([]networth.View, networth.Totals) {
	prices := networth.NewPriceTable()
	rates := networth.NewRateTable(networth.DefaultPivot)
	yahoo.Update(prices, rates, l.Holdings(), l.Reference(), time.Now())
	views := networth.ComputeViews(l.Holdings(), prices, rates, l.Reference(), l.History())
	return views, networth.Aggregate(views, l.Reference())
}

func summaryReport() (string, error) {
	l, err := loadLedger()
	if err != nil {
		return "", fmt.Errorf("could not load ledger: %w", err)
	}
	views, totals := valueLedger(l)
	return renderer.RenderSummary(renderer.NewSummary(networth.Today(), l.Reference(), views, totals)), nil
}

func holdingReport(id string) (string, error) {
	l, err := loadLedger()
	if err != nil {
		return "", fmt.Errorf("could not load ledger: %w", err)
	}
	views, _ := valueLedger(l)
	for _, v := range views {
		if v.ID == id {
			return renderer.RenderHoldingDetail(renderer.NewHoldingDetail(v, l.Transactions(id))), nil
		}
	}
	return "", fmt.Errorf("unknown holding %q", id)
}
