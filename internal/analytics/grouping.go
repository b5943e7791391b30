// Package analytics contém o motor de agregação do dashboard de vendas.
// Todas as funções são puras: recebem um snapshot em memória e devolvem valores novos.
package analytics

import (
	"maps"
	"slices"
)

// Grouping é um mapeamento ordenado e imutável de chave para acumulador.
// A ordem das chaves é a ordem da primeira ocorrência.
type Grouping[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

func NewGrouping[K comparable, V any]() Grouping[K, V] {
	return Grouping[K, V]{}
}

// With retorna um novo agrupamento em que o acumulador de key foi substituído por fn(atual, existe).
// O agrupamento original permanece inalterado.
func (g Grouping[K, V]) With(key K, fn func(current V, exists bool) V) Grouping[K, V] {
	current, exists := g.values[key]

	keys := g.keys
	if !exists {
		keys = append(slices.Clip(g.keys), key)
	}

	values := make(map[K]V, len(g.values)+1)
	maps.Copy(values, g.values)
	values[key] = fn(current, exists)

	return Grouping[K, V]{keys: keys, values: values}
}

func (g Grouping[K, V]) Get(key K) (V, bool) {
	value, ok := g.values[key]
	return value, ok
}

func (g Grouping[K, V]) Len() int {
	return len(g.keys)
}

func (g Grouping[K, V]) Keys() []K {
	return slices.Clone(g.keys)
}

// Values retorna os acumuladores na ordem das chaves
func (g Grouping[K, V]) Values() []V {
	values := make([]V, 0, len(g.keys))
	for _, key := range g.keys {
		values = append(values, g.values[key])
	}
	return values
}

// Fold reduz items a um único valor, da esquerda para a direita
func Fold[T, A any](items []T, initial A, step func(A, T) A) A {
	acc := initial
	for _, item := range items {
		acc = step(acc, item)
	}
	return acc
}
