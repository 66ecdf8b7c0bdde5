// Package order contains the order aggregate as seen by the courier assignment
// engine: the immutable facts a decision is made from, the lifecycle status that
// gates courier changes, and the frozen courier snapshot embedded in the order
// once assignment happens.
//
// The aggregate deliberately knows nothing about rules or carriers. It receives
// a fully built Snapshot and only enforces the state machine around it:
// assignment happens exactly once at creation, overrides are allowed strictly
// before the order starts processing, and an order can never ship without a
// courier.
package order
