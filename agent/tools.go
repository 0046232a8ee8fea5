package agent

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/etnz/paycal"
	"github.com/etnz/paycal/docs"
	"github.com/etnz/paycal/renderer"
	"golang.org/x/text/message"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// Calendar is the tracked calendar the tools read from.
type Calendar interface {
	Report(f paycal.Filter) *paycal.Report
	Overrides() paycal.Overrides
}

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
			They are at your service and keep context of your previous questions.

			The user is paying one or more real estate projects by installments, in USD and UAH.
			He wants to know what is paid, what is left, and what paying everything early would cost.

			Devise a plan of questions to ask to each expert and come up with the best response to the user's request.
			Answer in the user's language.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst is an expert grounded on Google Search, for exchange rates and news.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is a market analyst, aware of the current USD/UAH exchange rates,
		of the Ukrainian real estate market and of the banking news.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a market analyst. You leverage Google Search to ground your assertions,
			you know the official and market USD/UAH exchange rates and their recent trend.
			`}}},
		},
	}
}

// NewAccountant is the expert of the payment calendar, it answers with the
// tools over c rendered in the language of p.
func NewAccountant(c Calendar, p *message.Printer) *Expert {
	lib := Tools(c, p)
	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant. He reads the user's payment calendar: the planned payments,
		what was really paid, the totals and the early payoff estimate.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an accountant in charge of the user's payment calendar.
				Use the Tools to extract relevant information:
				  - the list of payments, filtered by year, period or text
				  - rollups by month, quarter or year
				  - the summary of paid and remaining amounts
				  - the early payoff estimate
				  - the detail of a payment by its key
				Read the Documentation tool when you need to explain how a figure is computed.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Tools returns the functions reading c.
func Tools(c Calendar, p *message.Printer) []Function {
	return []Function{
		paymentsTool(c, p),
		periodsTool(c, p),
		markdownTool(c, p, "Summary", "Summary returns the amounts paid so far, the remaining plan, the early payoff and the total cost.", renderer.RenderSummary),
		markdownTool(c, p, "Payoff", "Payoff returns the early payoff estimate of each selected project and its strategy.", renderer.RenderPayoff),
		paymentTool(c, p),
		docTool(),
	}
}

func paymentsTool(c Calendar, p *message.Printer) *Func {
	const name = "Payments"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: "Payments lists the payments of the selected projects, by month, with their status and amounts.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"year":   {Type: genai.TypeInteger, Description: "Only the payments of this year."},
					"period": {Type: genai.TypeString, Description: `Only the payments of this period, in the user's view mode: "2026-03" for a month, "2026-Q1" for a quarter or "2026" for a year.`},
					"search": {Type: genai.TypeString, Description: "Only the payments matching this text, case insensitive."},
				},
			},
			Response: &genai.Schema{Type: genai.TypeString, Description: "A markdown table of payments per month."},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			var f paycal.Filter
			var err error
			if f.Year, err = intArg(args, "year"); err != nil {
				return errorResponse(id, name, err)
			}
			if f.Period, err = stringArg(args, "period", false); err != nil {
				return errorResponse(id, name, err)
			}
			if f.Search, err = stringArg(args, "search", false); err != nil {
				return errorResponse(id, name, err)
			}
			var b bytes.Buffer
			renderer.RenderCalendar(&b, c.Report(f), p)
			return outputResponse(id, name, b.String())
		},
	}
}

func periodsTool(c Calendar, p *message.Printer) *Func {
	const name = "Periods"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: "Periods rolls up the payments by month, quarter or year.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"period": {Type: genai.TypeString, Enum: []string{"month", "quarter", "year"}, Description: "The rollup period, month by default."},
					"year":   {Type: genai.TypeInteger, Description: "Only the payments of this year."},
				},
			},
			Response: &genai.Schema{Type: genai.TypeString, Description: "A markdown table with one row per period."},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			raw, err := stringArg(args, "period", false)
			if err != nil {
				return errorResponse(id, name, err)
			}
			period, err := paycal.ParsePeriod(raw)
			if err != nil {
				return errorResponse(id, name, err)
			}
			year, err := intArg(args, "year")
			if err != nil {
				return errorResponse(id, name, err)
			}
			rep := c.Report(paycal.Filter{Year: year})
			var b bytes.Buffer
			renderer.RenderPeriods(&b, rep.Aggregate(period), rep.Currency, p)
			return outputResponse(id, name, b.String())
		},
	}
}

func markdownTool(c Calendar, p *message.Printer, name, description string, render func(io.Writer, *paycal.Report, *message.Printer)) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: description,
			Response:    &genai.Schema{Type: genai.TypeString, Description: "A markdown document."},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			var b bytes.Buffer
			render(&b, c.Report(paycal.Filter{}), p)
			return outputResponse(id, name, b.String())
		},
	}
}

func paymentTool(c Calendar, p *message.Printer) *Func {
	const name = "Payment"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: "Payment details one payment, with the user's corrections if any.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"key": {Type: genai.TypeString, Description: `The payment key "<project>:<id>", as found in the Payments table.`},
				},
				Required: []string{"key"},
			},
			Response: &genai.Schema{Type: genai.TypeString, Description: "A markdown document."},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			key, err := stringArg(args, "key", true)
			if err != nil {
				return errorResponse(id, name, err)
			}
			rep := c.Report(paycal.Filter{})
			row, ok := rep.Row(key)
			if !ok {
				return errorResponse(id, name, fmt.Errorf("%w: %q", paycal.ErrUnknownRecord, key))
			}
			var b bytes.Buffer
			renderer.RenderDetail(&b, row, c.Overrides().Get(key), rep, p)
			return outputResponse(id, name, b.String())
		},
	}
}

func docTool() *Func {
	const name = "Documentation"
	topics, _ := docs.GetAllTopics()
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: "Documentation returns a topic of the user documentation, explaining how figures are computed.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"topic": {Type: genai.TypeString, Enum: topics, Description: "The topic, all topics when missing."},
				},
			},
			Response: &genai.Schema{Type: genai.TypeString, Description: "A markdown document."},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			topic, err := stringArg(args, "topic", false)
			if err != nil {
				return errorResponse(id, name, err)
			}
			if topic == "" {
				topic = "*"
			}
			doc, err := docs.GetTopic(topic)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, doc)
		},
	}
}
