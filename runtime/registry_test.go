package runtime_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chat-relay/contract"
	"chat-relay/domain"
	errs "chat-relay/errors"
	"chat-relay/runtime"
)

func TestRegistry_ClaimRejectsDuplicates(t *testing.T) {
	req := require.New(t)
	registry := runtime.NewRegistry()
	now := time.Now()

	// Given a session already holding the name
	first := domain.NewSession(&fakeConduit{}, now)
	req.NoError(registry.Claim(first, "alice"))

	// When another session claims it
	second := domain.NewSession(&fakeConduit{}, now)
	err := registry.Claim(second, "alice")

	// Then the claim is rejected and the session stays unnamed
	req.ErrorIs(err, errs.ErrDuplicateName)
	req.False(second.Named())
	req.Equal(1, registry.Count())
}

func TestRegistry_ConcurrentClaims(t *testing.T) {
	req := require.New(t)
	registry := runtime.NewRegistry()
	now := time.Now()

	// Given many sessions racing for the same name
	const contenders = 32
	errors := make([]error, contenders)
	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := domain.NewSession(&fakeConduit{}, now)
			req.NoError(registry.Register(s))
			errors[i] = registry.Claim(s, "alice")
		}(i)
	}
	wg.Wait()

	// Then exactly one claim wins
	winners := 0
	for _, err := range errors {
		if err == nil {
			winners++
		}
	}
	req.Equal(1, winners)
	req.NotNil(registry.Find("alice"))
}

func TestRegistry_DistinctNamesCoexist(t *testing.T) {
	req := require.New(t)
	registry := runtime.NewRegistry()
	now := time.Now()

	alice := domain.NewSession(&fakeConduit{}, now)
	bob := domain.NewSession(&fakeConduit{}, now)
	req.NoError(registry.Claim(alice, "alice"))
	req.NoError(registry.Claim(bob, "bob"))

	req.Equal(2, registry.Count())
	req.Same(alice, registry.Find("alice"))
	req.Same(bob, registry.Find("bob"))
}

func TestRegistry_FindNeverMatchesReservedOrUnnamed(t *testing.T) {
	req := require.New(t)
	registry := runtime.NewRegistry()

	// Given an unnamed session in the registry
	s := domain.NewSession(&fakeConduit{}, time.Now())
	req.NoError(registry.Register(s))

	// Then neither the empty name nor the operator name resolves to it
	req.Nil(registry.Find(""))
	req.Nil(registry.Find("ADMIN"))
	req.Equal(1, registry.Count())
}

func TestRegistry_UnregisterIsIdempotent(t *testing.T) {
	req := require.New(t)
	registry := runtime.NewRegistry()

	s := domain.NewSession(&fakeConduit{}, time.Now())
	req.NoError(registry.Register(s))

	registry.Unregister(s)
	registry.Unregister(s)

	req.Equal(0, registry.Count())
}

func TestRegistry_AtomicallySeesOneMembership(t *testing.T) {
	req := require.New(t)
	registry := runtime.NewRegistry()
	now := time.Now()

	alice, _ := namedSession(registry, "alice", now)
	namedSession(registry, "bob", now)

	registry.Atomically(func(view contract.RegistryView) {
		req.Equal(2, view.Count())
		req.Same(alice, view.Find("alice"))

		visited := 0
		view.ForEach(func(*domain.Session) { visited++ })
		req.Equal(2, visited)
	})
}
