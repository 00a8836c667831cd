package components

import "github.com/automoto/slopecollide/collision"

// Object is the collision object of an entity. It is the component the
// collision system attaches, so every collidable archetype carries it.
var Object = collision.ObjectComponent
