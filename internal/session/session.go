// Package session drives the interactive command loop for a single
// authenticated operator. It owns the warehouse collection for the lifetime
// of the session and rewrites the snapshot after every successful mutation.
package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/edgarsj/warehouse-cli/internal/cli"
	"github.com/edgarsj/warehouse-cli/internal/domain"
	"github.com/hashicorp/go-hclog"
)

// Snapshotter persists the whole warehouse after a successful mutation.
type Snapshotter interface {
	SaveProducts(list *domain.ProductList) error
}

type Session struct {
	warehouse *domain.ProductList
	store     Snapshotter
	ask       *cli.Ask
	display   *cli.Display
	out       io.Writer
	logger    hclog.Logger
	audit     hclog.Logger
	username  string
}

func New(
	warehouse *domain.ProductList,
	store Snapshotter,
	ask *cli.Ask,
	display *cli.Display,
	out io.Writer,
	logger hclog.Logger,
	audit hclog.Logger,
	username string) *Session {
	return &Session{
		warehouse: warehouse,
		store:     store,
		ask:       ask,
		display:   display,
		out:       out,
		logger:    logger,
		audit:     audit,
		username:  username,
	}
}

// actionsRequiringProducts cannot run against an empty warehouse.
var actionsRequiringProducts = map[cli.Action]bool{
	cli.ActionDeleteProduct: true,
	cli.ActionAddStock:      true,
	cli.ActionWithdrawStock: true,
	cli.ActionUpdateProduct: true,
}

// Run executes the command loop until the operator exits or the input stream
// closes. A missing product aborts only the current command; storage
// failures end the session.
func (s *Session) Run() error {
	for {
		empty := s.warehouse.Len() == 0
		if empty {
			fmt.Fprintln(s.out, "The warehouse is empty!")
		} else {
			s.display.Warehouse(s.warehouse.Products())
		}

		action, err := s.ask.MainAction()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if empty && actionsRequiringProducts[action] {
			fmt.Fprintln(s.out, "You cannot do this as there are no products in the warehouse!")
			continue
		}

		switch action {
		case cli.ActionAddProduct:
			err = s.addProduct()
		case cli.ActionDeleteProduct:
			err = s.deleteProduct()
		case cli.ActionAddStock:
			err = s.addStock()
		case cli.ActionWithdrawStock:
			err = s.withdrawStock()
		case cli.ActionUpdateProduct:
			err = s.updateProduct()
		case cli.ActionReport:
			s.report()
		case cli.ActionExit:
			return nil
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, domain.ErrProductNotFound) {
			fmt.Fprintln(s.out, err)
			continue
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) addProduct() error {
	name, price, quantity, err := s.ask.ProductInfo()
	if err != nil {
		return err
	}
	s.logger.Debug("Adding new product", "name", name)

	product, err := domain.NewProduct(name, price, quantity)
	if err != nil {
		return err
	}

	s.warehouse.Add(product)
	if err := s.store.SaveProducts(s.warehouse); err != nil {
		return err
	}

	s.audit.Info("added product to warehouse",
		"user", s.username, "product", product.Name(), "id", product.ID())
	return nil
}

func (s *Session) deleteProduct() error {
	product, err := s.selectProduct()
	if err != nil {
		return err
	}

	s.logger.Debug("Deleting product", "id", product.ID())
	s.warehouse.Delete(product)
	if err := s.store.SaveProducts(s.warehouse); err != nil {
		return err
	}

	s.audit.Info("deleted product from warehouse",
		"user", s.username, "product", product.Name(), "id", product.ID())
	return nil
}

func (s *Session) addStock() error {
	product, err := s.selectProduct()
	if err != nil {
		return err
	}

	amount, err := s.ask.Quantity(1, cli.MaxQuantity)
	if err != nil {
		return err
	}

	s.logger.Debug("Adding stock", "id", product.ID(), "amount", amount)
	quantity := product.Quantity() + amount
	product.Update(domain.ProductPatch{Quantity: &quantity})
	if err := s.store.SaveProducts(s.warehouse); err != nil {
		return err
	}

	s.audit.Info("added stock to product",
		"user", s.username, "amount", amount,
		"product", product.Name(), "id", product.ID())
	return nil
}

func (s *Session) withdrawStock() error {
	product, err := s.selectProduct()
	if err != nil {
		return err
	}

	if product.Quantity() == 0 {
		fmt.Fprintln(s.out, "You cannot withdraw any of this product, as there is 0 of it in stock!")
		return nil
	}

	amount, err := s.ask.Quantity(1, product.Quantity())
	if err != nil {
		return err
	}

	s.logger.Debug("Withdrawing stock", "id", product.ID(), "amount", amount)
	quantity := product.Quantity() - amount
	product.Update(domain.ProductPatch{Quantity: &quantity})
	if err := s.store.SaveProducts(s.warehouse); err != nil {
		return err
	}

	s.audit.Info("withdrew stock from product",
		"user", s.username, "amount", amount,
		"product", product.Name(), "id", product.ID())
	return nil
}

func (s *Session) updateProduct() error {
	product, err := s.selectProduct()
	if err != nil {
		return err
	}

	change, err := s.ask.Property()
	if err != nil {
		return err
	}

	s.logger.Debug("Updating product property", "id", product.ID(), "property", change.Property)
	product.Update(change.Patch)
	if err := s.store.SaveProducts(s.warehouse); err != nil {
		return err
	}

	s.audit.Info("changed product property",
		"user", s.username, "property", change.Property, "value", change.Value,
		"product", product.Name(), "id", product.ID())
	return nil
}

func (s *Session) report() {
	totalQuantity := 0
	totalValue := 0
	for _, p := range s.warehouse.Products() {
		totalQuantity += p.Quantity()
		totalValue += p.Quantity() * p.Price()
	}

	s.display.Report(totalQuantity, totalValue)
}

func (s *Session) selectProduct() (*domain.Product, error) {
	id, err := s.ask.Product(s.warehouse.Products())
	if err != nil {
		return nil, err
	}

	return s.warehouse.GetProductByID(id)
}
