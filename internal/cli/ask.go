package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/edgarsj/warehouse-cli/internal/domain"
)

// Action is a main-menu command.
type Action string

const (
	ActionAddProduct    Action = "add new product"
	ActionDeleteProduct Action = "delete product"
	ActionAddStock      Action = "add to product"
	ActionWithdrawStock Action = "withdraw from product"
	ActionUpdateProduct Action = "update product"
	ActionReport        Action = "get report"
	ActionExit          Action = "exit"
)

// mainActions in menu order.
var mainActions = []Action{
	ActionAddProduct,
	ActionDeleteProduct,
	ActionAddStock,
	ActionWithdrawStock,
	ActionUpdateProduct,
	ActionReport,
	ActionExit,
}

// Upper bounds for interactively entered amounts.
const (
	MaxQuantity = 9999999
	MaxPrice    = 9999999
)

// PropertyChange is the outcome of the update-product dialog: the patch to
// apply plus the property name and entered value for the audit line.
type PropertyChange struct {
	Property string
	Value    string
	Patch    domain.ProductPatch
}

// Ask collects validated input from the operator. Every prompt re-asks until
// the input passes validation; only a closed input stream surfaces an error.
type Ask struct {
	in         *bufio.Scanner
	out        io.Writer
	validation *Validation
}

func NewAsk(in io.Reader, out io.Writer, validation *Validation) *Ask {
	return &Ask{
		in:         bufio.NewScanner(in),
		out:        out,
		validation: validation,
	}
}

// MainAction asks which command to run next.
func (a *Ask) MainAction() (Action, error) {
	choices := make([]string, len(mainActions))
	for i, action := range mainActions {
		choices[i] = string(action)
	}

	i, err := a.choose("What do you want to do?", choices)
	if err != nil {
		return "", err
	}

	return mainActions[i], nil
}

// Product asks the operator to pick a product and returns its id.
func (a *Ask) Product(products []*domain.Product) (string, error) {
	choices := make([]string, len(products))
	for i, p := range products {
		choices[i] = fmt.Sprintf("%s (%s)", p.Name(), p.ID())
	}

	i, err := a.choose("Select a product", choices)
	if err != nil {
		return "", err
	}

	return products[i].ID(), nil
}

// ProductInfo collects the fields for a new product.
func (a *Ask) ProductInfo() (name string, price, quantity int, err error) {
	for {
		line, err := a.prompt("What is the product name? ")
		if err != nil {
			return "", 0, 0, err
		}
		name, err = a.validation.RequiredText(line)
		if err == nil {
			break
		}
		fmt.Fprintf(a.out, "Name %s\n", err)
	}

	quantity, err = a.Quantity(1, MaxQuantity)
	if err != nil {
		return "", 0, 0, err
	}
	price, err = a.Price(MaxPrice)
	if err != nil {
		return "", 0, 0, err
	}

	return name, price, quantity, nil
}

// Quantity asks for a stock amount within the inclusive bounds.
func (a *Ask) Quantity(min, max int) (int, error) {
	return a.intInRange(fmt.Sprintf("Enter the quantity (%d-%d) ", min, max), min, max)
}

// Price asks for a price between 1 and max.
func (a *Ask) Price(max int) (int, error) {
	return a.intInRange(fmt.Sprintf("Enter the price (1-%d) ", max), 1, max)
}

// Property runs the update-product dialog and returns the resulting patch.
func (a *Ask) Property() (PropertyChange, error) {
	i, err := a.choose("What property do you want to update?", []string{
		"price",
		"expiration date",
	})
	if err != nil {
		return PropertyChange{}, err
	}

	switch i {
	case 0:
		price, err := a.Price(MaxPrice)
		if err != nil {
			return PropertyChange{}, err
		}
		return PropertyChange{
			Property: "price",
			Value:    strconv.Itoa(price),
			Patch:    domain.ProductPatch{Price: &price},
		}, nil
	default:
		date, err := a.Date()
		if err != nil {
			return PropertyChange{}, err
		}
		return PropertyChange{
			Property: "expiration date",
			Value:    date.Format("2006-01-02 15:04:05"),
			Patch: domain.ProductPatch{
				ExpiresAt: &domain.NullableTime{Time: date, Valid: true},
			},
		}, nil
	}
}

// Date asks for an expiration date until one parses.
func (a *Ask) Date() (time.Time, error) {
	for {
		line, err := a.prompt("Enter the date - ")
		if err != nil {
			return time.Time{}, err
		}
		t, err := a.validation.Date(line)
		if err == nil {
			return t, nil
		}
		fmt.Fprintf(a.out, "Date %s\n", err)
	}
}

// Login asks for credentials. The password is read as a plain line; hiding
// terminal echo is not worth a terminal-control dependency here.
func (a *Ask) Login() (username, password string, err error) {
	username, err = a.prompt("Enter your username ")
	if err != nil {
		return "", "", err
	}
	password, err = a.prompt("Enter your password ")
	if err != nil {
		return "", "", err
	}

	return username, password, nil
}

func (a *Ask) intInRange(question string, min, max int) (int, error) {
	for {
		line, err := a.prompt(question)
		if err != nil {
			return 0, err
		}
		n, err := a.validation.IntInRange(line, min, max)
		if err == nil {
			return n, nil
		}
		fmt.Fprintf(a.out, "Value %s\n", err)
	}
}

// choose renders a numbered menu and returns the index of the selection,
// accepting either the number or the exact choice text.
func (a *Ask) choose(question string, choices []string) (int, error) {
	for {
		fmt.Fprintln(a.out, question)
		for i, choice := range choices {
			fmt.Fprintf(a.out, "  [%d] %s\n", i, choice)
		}

		line, err := a.prompt("> ")
		if err != nil {
			return 0, err
		}

		if n, err := strconv.Atoi(line); err == nil && n >= 0 && n < len(choices) {
			return n, nil
		}
		for i, choice := range choices {
			if line == choice {
				return i, nil
			}
		}

		fmt.Fprintf(a.out, "Value %q is invalid\n", line)
	}
}

func (a *Ask) prompt(question string) (string, error) {
	fmt.Fprint(a.out, question)
	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	return strings.TrimSpace(a.in.Text()), nil
}
