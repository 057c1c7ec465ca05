// Package cript is a client library for the CRIPT data-management
// API.
//
// It offers typed node records for the CRIPT data model (Project,
// Collection, Experiment, Computation, Material, ...), graph
// serialization in the condensed wire format, local graph utilities
// (search, orphan checking), schema and controlled-vocabulary
// validation, and a Client for saving and searching nodes on a CRIPT
// server.
//
// A typical session builds a project graph bottom-up with the NewXxx
// constructors, links the nodes, and saves the root:
//
//	client := cript.NewClientFromEnv()
//	project := cript.NewProject("polymer-networks")
//	collection := cript.NewCollection("simulations")
//	project.Collection = []*cript.Collection{collection}
//	...
//	err := client.Save(ctx, project)
package cript
