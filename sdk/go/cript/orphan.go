// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

import "fmt"

// OrphanedNodeError indicates a node that is reachable from a project
// but not registered where the data model requires it: materials must
// be listed in the project's material list or a collection inventory,
// and processes, computations, computation processes, and data must be
// listed in an experiment.
type OrphanedNodeError struct {
	Node Node
}

func (e *OrphanedNodeError) Error() string {
	return fmt.Sprintf("orphaned %s node %s: not attached to the project or any experiment", nodeKind(e.Node), e.Node.base().UID)
}

// CheckOrphans verifies that every experiment-scoped node reachable
// from p is properly registered. It returns an *OrphanedNodeError for
// the first violation found, or nil.
func (p *Project) CheckOrphans() error {
	registered := map[Node]bool{}
	for _, m := range p.Material {
		registered[m] = true
	}
	for _, coll := range p.Collection {
		for _, inv := range coll.Inventory {
			for _, m := range inv.Material {
				registered[m] = true
			}
		}
		for _, exp := range coll.Experiment {
			for _, n := range exp.Process {
				registered[n] = true
			}
			for _, n := range exp.Computation {
				registered[n] = true
			}
			for _, n := range exp.ComputationProcess {
				registered[n] = true
			}
			for _, n := range exp.Data {
				registered[n] = true
			}
		}
	}

	var orphan Node
	Walk(p, func(n Node) {
		if orphan != nil || registered[n] {
			return
		}
		switch n.(type) {
		case *Material, *Process, *Computation, *ComputationProcess, *Data:
			orphan = n
		}
	})
	if orphan != nil {
		return &OrphanedNodeError{Node: orphan}
	}
	return nil
}

// AddOrphanedNodes repairs a project graph by registering orphaned
// nodes: orphaned materials are appended to the project's material
// list, and other orphans to the given experiment's corresponding
// list. The experiment must already be part of the project. At most
// maxIterations repair rounds are attempted.
func AddOrphanedNodes(p *Project, exp *Experiment, maxIterations int) error {
	if exp != nil {
		attached := false
		Walk(p, func(n Node) {
			if n == Node(exp) {
				attached = true
			}
		})
		if !attached {
			return fmt.Errorf("experiment %q is not part of project %q", exp.Name, p.Name)
		}
	}
	for i := 0; i < maxIterations; i++ {
		err := p.CheckOrphans()
		if err == nil {
			return nil
		}
		orphanErr, ok := err.(*OrphanedNodeError)
		if !ok {
			return err
		}
		switch n := orphanErr.Node.(type) {
		case *Material:
			p.Material = append(p.Material, n)
		case *Process:
			if exp == nil {
				return err
			}
			exp.Process = append(exp.Process, n)
		case *Computation:
			if exp == nil {
				return err
			}
			exp.Computation = append(exp.Computation, n)
		case *ComputationProcess:
			if exp == nil {
				return err
			}
			exp.ComputationProcess = append(exp.ComputationProcess, n)
		case *Data:
			if exp == nil {
				return err
			}
			exp.Data = append(exp.Data, n)
		default:
			return err
		}
	}
	return fmt.Errorf("graph still has orphaned nodes after %d repair iterations", maxIterations)
}
