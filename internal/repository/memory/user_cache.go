package memory

import (
	"time"

	"ai-notes-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// UserCache keeps recently resolved user records so the profile path does
// not hit the store on every authenticated request.
type UserCache struct {
	cache *cache.Cache
}

func NewUserCache() *UserCache {
	// Default expiration of 5 minutes, purge sweep every 10.
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &UserCache{
		cache: c,
	}
}

func (r *UserCache) Save(user *entity.User) {
	r.cache.Set(user.Id.String(), user, cache.DefaultExpiration)
}

func (r *UserCache) Get(id uuid.UUID) (*entity.User, bool) {
	if x, found := r.cache.Get(id.String()); found {
		return x.(*entity.User), true
	}
	return nil, false
}

func (r *UserCache) Delete(id uuid.UUID) {
	r.cache.Delete(id.String())
}
