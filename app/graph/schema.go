// Package graph defines the read-only GraphQL query surface: catalogue and
// customer lookups for storefront screens that want one round trip instead
// of several REST calls. Mutations stay on the REST API.
package graph

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/spectraretail/spectra-pos/app/models"
	"github.com/spectraretail/spectra-pos/app/services"
	gql "github.com/spectraretail/spectra-pos/pkg/graphql"
)

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.Int},
		"name":     &graphql.Field{Type: graphql.String},
		"category": &graphql.Field{Type: graphql.String},
		"brand":    &graphql.Field{Type: graphql.String},
		"price":    &graphql.Field{Type: graphql.Float},
		"stock":    &graphql.Field{Type: graphql.Int},
	},
})

var customerType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Customer",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.Int},
		"name":        &graphql.Field{Type: graphql.String},
		"phone":       &graphql.Field{Type: graphql.String},
		"address":     &graphql.Field{Type: graphql.String},
		"points":      &graphql.Field{Type: graphql.Float},
		"dateOfBirth": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if c, ok := p.Source.(models.Customer); ok {
					return c.DateOfBirth, nil
				}
				if c, ok := p.Source.(*models.Customer); ok {
					return c.DateOfBirth, nil
				}
				return nil, nil
			},
		},
		"anniversary": &graphql.Field{Type: graphql.String},
		"interests":   &graphql.Field{Type: graphql.String},
	},
})

var purchaseItemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PurchaseItem",
	Fields: graphql.Fields{
		"product_id":   &graphql.Field{Type: graphql.Int},
		"product_name": &graphql.Field{Type: graphql.String},
		"category":     &graphql.Field{Type: graphql.String},
		"quantity":     &graphql.Field{Type: graphql.Int},
		"unit_price":   &graphql.Field{Type: graphql.Float},
		"line_total":   &graphql.Field{Type: graphql.Float},
	},
})

var purchaseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Purchase",
	Fields: graphql.Fields{
		"id":            &graphql.Field{Type: graphql.Int},
		"phone":         &graphql.Field{Type: graphql.String},
		"total":         &graphql.Field{Type: graphql.Float},
		"points_earned": &graphql.Field{Type: graphql.Float},
		"items":         &graphql.Field{Type: graphql.NewList(purchaseItemType)},
	},
})

// NewSchema builds the query schema over the catalogue, customer, and
// purchase stores.
func NewSchema(catalog *services.CatalogService, customers *services.CustomerService, purchases services.PurchaseStore) (graphql.Schema, error) {
	root := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type:        graphql.NewList(productType),
				Description: "The full catalogue, optionally filtered by category.",
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					products, err := catalog.Products()
					if err != nil {
						return nil, err
					}
					category, ok := p.Args["category"].(string)
					if !ok || category == "" {
						return products, nil
					}
					filtered := products[:0:0]
					for _, prod := range products {
						if prod.Category == category {
							filtered = append(filtered, prod)
						}
					}
					return filtered, nil
				},
			},
			"product": &graphql.Field{
				Type:        productType,
				Description: "One product by id.",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, ok := p.Args["id"].(int)
					if !ok || id < 1 {
						return nil, fmt.Errorf("invalid product id")
					}
					return catalog.Get(uint(id))
				},
			},
			"customer": &graphql.Field{
				Type:        customerType,
				Description: "One customer by 10 digit phone.",
				Args: graphql.FieldConfigArgument{
					"phone": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					phone, _ := p.Args["phone"].(string)
					return customers.Lookup(phone)
				},
			},
			"purchases": &graphql.Field{
				Type:        graphql.NewList(purchaseType),
				Description: "A customer's purchase history, newest first.",
				Args: graphql.FieldConfigArgument{
					"phone": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					phone, _ := p.Args["phone"].(string)
					return purchases.ByPhone(phone)
				},
			},
			"customers": &graphql.Field{
				Type:        graphql.NewList(customerType),
				Description: "Customers whose name or phone matches q, or all when q is empty.",
				Args: graphql.FieldConfigArgument{
					"q": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					q, _ := p.Args["q"].(string)
					if q == "" {
						return customers.All()
					}
					return customers.Search(q)
				},
			},
		},
	})

	return gql.NewSchema(root)
}
