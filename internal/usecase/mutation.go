package usecase

import (
	"context"
	"fmt"
	"log"
)

// Estados da mutação otimista: aplica o efeito tentativo, tenta o efeito
// remoto e desfaz tudo se qualquer passo falhar.
const (
	MutationIdle       = "idle"
	MutationPending    = "pending"
	MutationCommitted  = "committed"
	MutationRolledBack = "rolled_back"
)

type Mutation struct {
	state         string
	operations    []Operation
	compensations []Compensation
}

type Operation struct {
	Name string
	Fn   func(context.Context) error
}

type Compensation struct {
	Name string
	Fn   func(context.Context) error
}

func NewMutation() *Mutation {
	return &Mutation{
		state:         MutationIdle,
		operations:    []Operation{},
		compensations: []Compensation{},
	}
}

func (m *Mutation) AddOperation(name string, fn func(context.Context) error) {
	m.operations = append(m.operations, Operation{name, fn})
}

func (m *Mutation) AddCompensation(name string, fn func(context.Context) error) {
	m.compensations = append(m.compensations, Compensation{name, fn})
}

func (m *Mutation) State() string {
	return m.state
}

// Execute roda as operações na ordem. Se a operação i falhar, as
// compensações 0..i-1 são executadas em ordem reversa.
func (m *Mutation) Execute(ctx context.Context) error {
	m.state = MutationPending

	for i, op := range m.operations {
		if err := op.Fn(ctx); err != nil {
			m.rollback(ctx, i)
			m.state = MutationRolledBack
			return fmt.Errorf("operation '%s' failed: %w (rolled back %d operations)", op.Name, err, i)
		}
	}

	m.state = MutationCommitted
	return nil
}

func (m *Mutation) rollback(ctx context.Context, failedAtIndex int) {
	for i := failedAtIndex - 1; i >= 0; i-- {
		if i < len(m.compensations) {
			comp := m.compensations[i]
			if err := comp.Fn(ctx); err != nil {
				log.Printf("⚠️ WARNING: Compensation '%s' failed: %v (inconsistency risk!)", comp.Name, err)
			}
		}
	}
}
