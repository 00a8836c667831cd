package collision

// Response is what a listener answers to a contact with another object.
type Response uint8

const (
	// Continue lets both objects be separated.
	Continue Response = iota
	// AbortMove drops the contact: the pair is not separated.
	AbortMove
	// ForceMove keeps this object in place and pushes the other one out.
	ForceMove
)

func (r Response) String() string {
	switch r {
	case Continue:
		return "continue"
	case AbortMove:
		return "abort-move"
	case ForceMove:
		return "force-move"
	default:
		return "unknown"
	}
}

// Listener is the behaviour a collidable entity hands to the engine. The
// engine never inspects the entity behind it; other listeners are passed as
// opaque capabilities that implementations may type-switch on.
type Listener interface {
	// CollisionSolid is called when the object ran into solid geometry.
	CollisionSolid(hit Hit)
	// Collides decides whether a contact with other should be processed.
	Collides(other Listener, hit Hit) bool
	// Collision is called for every processed contact with another object.
	Collision(other Listener, hit Hit) Response
	// CollisionTile is called with the union of interesting attributes of
	// the tiles the object touches.
	CollisionTile(attributes uint32)
	// IsValid reports whether the entity is still alive.
	IsValid() bool
}

// ListenerFuncs adapts plain functions to a Listener. Nil fields fall back to
// accepting every contact and answering Continue.
type ListenerFuncs struct {
	OnSolid     func(hit Hit)
	OnCollides  func(other Listener, hit Hit) bool
	OnCollision func(other Listener, hit Hit) Response
	OnTile      func(attributes uint32)
	OnValid     func() bool
}

func (l *ListenerFuncs) CollisionSolid(hit Hit) {
	if l.OnSolid != nil {
		l.OnSolid(hit)
	}
}

func (l *ListenerFuncs) Collides(other Listener, hit Hit) bool {
	if l.OnCollides != nil {
		return l.OnCollides(other, hit)
	}
	return true
}

func (l *ListenerFuncs) Collision(other Listener, hit Hit) Response {
	if l.OnCollision != nil {
		return l.OnCollision(other, hit)
	}
	return Continue
}

func (l *ListenerFuncs) CollisionTile(attributes uint32) {
	if l.OnTile != nil {
		l.OnTile(attributes)
	}
}

func (l *ListenerFuncs) IsValid() bool {
	if l.OnValid != nil {
		return l.OnValid()
	}
	return true
}
