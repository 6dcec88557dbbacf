package system

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

const wallThickness = 0.1

// Overlap is one entity found by an area query.
type Overlap struct {
	Entity   ecs.Entity
	Tag      component.CollisionTag
	Distance float64
}

// shapeRef is stored in cp.Shape.UserData.
type shapeRef struct {
	entity ecs.Entity
	tag    component.CollisionTag
}

type spatialBody struct {
	body   *cp.Body
	shape  *cp.Shape
	radius float64
	static bool
}

// SpatialIndex mirrors every collider on the arena floor into a chipmunk
// space and answers circle overlap queries against it. The space is never
// stepped; it is only an index.
type SpatialIndex struct {
	space  *cp.Space
	bodies map[ecs.Entity]*spatialBody
	walls  []*cp.Shape
}

func NewSpatialIndex() *SpatialIndex {
	return &SpatialIndex{
		space:  cp.NewSpace(),
		bodies: make(map[ecs.Entity]*spatialBody),
	}
}

func (s *SpatialIndex) Space() *cp.Space {
	if s == nil {
		return nil
	}
	return s.space
}

// AddWall encloses the arena with a ring of static segments. Anything that
// touches them is reported as TagOther.
func (s *SpatialIndex) AddWall(radius float64, segments int) {
	if s == nil || radius <= 0 || segments < 3 {
		return
	}
	for _, shape := range s.walls {
		s.space.RemoveShape(shape)
	}
	s.walls = s.walls[:0]

	point := func(i int) cp.Vector {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		return cp.Vector{X: math.Cos(angle) * radius, Y: math.Sin(angle) * radius}
	}
	for i := 0; i < segments; i++ {
		shape := cp.NewSegment(s.space.StaticBody, point(i), point(i+1), wallThickness)
		shape.UserData = shapeRef{tag: component.TagOther}
		s.space.AddShape(shape)
		s.walls = append(s.walls, shape)
	}
}

// Update keeps the index in step with the world.
func (s *SpatialIndex) Update(w *ecs.World, _ float64) {
	s.Sync(w)
}

// Sync creates, moves and drops bodies so they match every live entity that
// has a Transform and a Collider.
func (s *SpatialIndex) Sync(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for e := range s.bodies {
		if !ecs.IsAlive(w, e) || !ecs.Has(w, e, component.ColliderComponent.Kind()) {
			s.Remove(e)
		}
	}

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(e ecs.Entity, t *component.Transform, c *component.Collider) {
		info, ok := s.bodies[e]
		if ok && info.radius != c.Radius {
			s.Remove(e)
			ok = false
		}
		if !ok {
			info = s.addBody(w, e, t, c)
		}
		if info.static {
			return
		}
		pos := cp.Vector{X: t.Position.X, Y: t.Position.Z}
		if info.body.Position() != pos {
			s.move(info, pos)
		}
	})
}

func (s *SpatialIndex) addBody(w *ecs.World, e ecs.Entity, t *component.Transform, c *component.Collider) *spatialBody {
	pos := cp.Vector{X: t.Position.X, Y: t.Position.Z}
	info := &spatialBody{radius: c.Radius}

	if ecs.Has(w, e, component.ObstacleTagComponent.Kind()) {
		info.static = true
		info.body = s.space.StaticBody
		info.shape = cp.NewCircle(s.space.StaticBody, c.Radius, pos)
	} else {
		body := cp.NewKinematicBody()
		s.space.AddBody(body)
		body.SetPosition(pos)
		info.body = body
		info.shape = cp.NewCircle(body, c.Radius, cp.Vector{})
	}
	info.shape.UserData = shapeRef{entity: e, tag: c.Tag}
	s.space.AddShape(info.shape)

	s.bodies[e] = info
	return info
}

// move re-inserts the shape so the broadphase tree sees its new bounds. The
// space is never stepped, so nothing else refreshes them.
func (s *SpatialIndex) move(info *spatialBody, pos cp.Vector) {
	s.space.RemoveShape(info.shape)
	info.body.SetPosition(pos)
	s.space.AddShape(info.shape)
}

// Remove drops the body of e, if any.
func (s *SpatialIndex) Remove(e ecs.Entity) {
	if s == nil {
		return
	}
	info, ok := s.bodies[e]
	if !ok {
		return
	}
	s.space.RemoveShape(info.shape)
	if !info.static {
		s.space.RemoveBody(info.body)
	}
	delete(s.bodies, e)
}

// ShapeTag returns the collision tag of a shape created by a SpatialIndex.
func ShapeTag(shape *cp.Shape) (component.CollisionTag, bool) {
	if shape == nil {
		return component.TagOther, false
	}
	ref, ok := shape.UserData.(shapeRef)
	return ref.tag, ok
}

// Len is the number of indexed entities, walls excluded.
func (s *SpatialIndex) Len() int {
	if s == nil {
		return 0
	}
	return len(s.bodies)
}

// Overlap returns every collider touching the horizontal circle at center,
// nearest first. Wall hits carry a zero Entity.
func (s *SpatialIndex) Overlap(w *ecs.World, center common.Vec3, radius float64) []Overlap {
	if s == nil || radius < 0 {
		return nil
	}
	s.Sync(w)

	var out []Overlap
	point := cp.Vector{X: center.X, Y: center.Z}
	s.space.BBQuery(cp.NewBBForCircle(point, radius), cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		ref, ok := shape.UserData.(shapeRef)
		if !ok {
			return
		}
		info := shape.PointQuery(point)
		if info.Distance > radius {
			return
		}
		out = append(out, Overlap{Entity: ref.entity, Tag: ref.tag, Distance: info.Distance})
	}, nil)

	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Entity < out[j].Entity
	})
	return out
}
