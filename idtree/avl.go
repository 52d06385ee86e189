// Package idtree is an AVL tree keyed by generator-issued integer ids. It is
// an ordered container only: it supports insertion and in-order traversal,
// never lookup by name and never deletion.
package idtree

import "iter"

// Node is a single tree member. Height of a leaf is 1; absent children count
// as height 0.
type Node[T any] struct {
	Key   int
	Value T

	height int
	left   *Node[T]
	right  *Node[T]
}

// NewNode returns a detached leaf.
func NewNode[T any](key int, value T) *Node[T] {
	return &Node[T]{Key: key, Value: value, height: 1}
}

// Height returns the node height, 0 for nil.
func Height[T any](n *Node[T]) int {
	if n == nil {
		return 0
	}

	return n.height
}

// Balance returns height(left) - height(right), 0 for nil.
func Balance[T any](n *Node[T]) int {
	if n == nil {
		return 0
	}

	return Height(n.left) - Height(n.right)
}

func (n *Node[T]) fix() {
	n.height = max(Height(n.left), Height(n.right)) + 1
}

func rotateRight[T any](x *Node[T]) *Node[T] {
	y := x.left
	x.left = y.right
	y.right = x
	x.fix()
	y.fix()

	return y
}

func rotateLeft[T any](x *Node[T]) *Node[T] {
	y := x.right
	x.right = y.left
	y.left = x
	x.fix()
	y.fix()

	return y
}

// Insert adds node under root and returns the new root. Inserting a key that
// already exists leaves the tree untouched: the first insert wins.
func Insert[T any](root, node *Node[T]) *Node[T] {
	root, _ = insert(root, node)
	return root
}

func insert[T any](root, node *Node[T]) (*Node[T], bool) {
	if root == nil {
		return node, true
	}

	var inserted bool

	switch {
	case node.Key < root.Key:
		root.left, inserted = insert(root.left, node)
	case node.Key > root.Key:
		root.right, inserted = insert(root.right, node)
	default:
		return root, false
	}

	root.fix()

	balance := Balance(root)

	switch {
	case balance > 1 && node.Key < root.left.Key:
		return rotateRight(root), inserted
	case balance < -1 && node.Key > root.right.Key:
		return rotateLeft(root), inserted
	case balance > 1 && node.Key > root.left.Key:
		root.left = rotateLeft(root.left)
		return rotateRight(root), inserted
	case balance < -1 && node.Key < root.right.Key:
		root.right = rotateRight(root.right)
		return rotateLeft(root), inserted
	}

	return root, inserted
}

// Walk visits the subtree in order: left, node, right. Returning false from
// visit stops the walk.
func Walk[T any](root *Node[T], visit func(*Node[T]) bool) bool {
	if root == nil {
		return true
	}

	if !Walk(root.left, visit) {
		return false
	}

	if !visit(root) {
		return false
	}

	return Walk(root.right, visit)
}

// WalkPostOrder visits left, right, then the node itself.
func WalkPostOrder[T any](root *Node[T], visit func(*Node[T])) {
	if root == nil {
		return
	}

	WalkPostOrder(root.left, visit)
	WalkPostOrder(root.right, visit)
	visit(root)
}

// Tree owns a root and a member count. The zero value is an empty tree.
type Tree[T any] struct {
	root *Node[T]
	size int
}

// Insert adds value under key and reports whether it was added.
func (t *Tree[T]) Insert(key int, value T) bool {
	root, inserted := insert(t.root, NewNode(key, value))

	t.root = root
	if inserted {
		t.size++
	}

	return inserted
}

func (t *Tree[T]) Len() int { return t.size }

// All iterates members in key order.
func (t *Tree[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		Walk(t.root, func(n *Node[T]) bool {
			return yield(n.Key, n.Value)
		})
	}
}

// Values returns the members in key order.
func (t *Tree[T]) Values() []T {
	values := make([]T, 0, t.size)
	for _, v := range t.All() {
		values = append(values, v)
	}

	return values
}
