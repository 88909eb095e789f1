package category

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestGetOrCreateIsIdempotent(t *testing.T) {
	r := NewRegistry()

	first := r.GetOrCreate("build")
	second := r.GetOrCreate("build")
	if first != second {
		t.Fatal("GetOrCreate returned different categories for the same label")
	}

	a, b := uuid.New(), uuid.New()
	first.Add(a)
	second.Add(b)

	members := first.Members()
	if len(members) != 2 || members[0] != a || members[1] != b {
		t.Fatalf("members = %v, want [%s %s]", members, a, b)
	}
	if got := second.Members(); len(got) != 2 {
		t.Fatalf("second handle sees %d members, want 2", len(got))
	}
	if r.Len() != 1 {
		t.Fatalf("registry has %d categories, want 1", r.Len())
	}
}

func TestMembersPreserveOrder(t *testing.T) {
	r := NewRegistry()
	refs := make([]uuid.UUID, 50)
	for i := range refs {
		refs[i] = uuid.New()
		r.Add("test", refs[i])
	}

	got, err := r.Members("test")
	if err != nil {
		t.Fatalf("Members() error = %v", err)
	}
	for i := range refs {
		if got[i] != refs[i] {
			t.Fatalf("member %d = %s, want %s", i, got[i], refs[i])
		}
	}
}

func TestMembersReturnsCopy(t *testing.T) {
	r := NewRegistry()
	c := r.Add("io", uuid.New())

	view := c.Members()
	view[0] = uuid.Nil

	if c.Members()[0] == uuid.Nil {
		t.Fatal("mutating the returned slice changed the category")
	}
}

func TestMembersUnknownLabel(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Members("nope"); err != ErrNotFound {
		t.Fatalf("Members(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestLabelsInCreationOrder(t *testing.T) {
	r := NewRegistry()
	for _, l := range []string{"build", "test", "deploy", "build"} {
		r.GetOrCreate(l)
	}

	got := r.Labels()
	want := []string{"build", "test", "deploy"}
	if len(got) != len(want) {
		t.Fatalf("Labels() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Labels() = %v, want %v", got, want)
		}
	}
}

func TestRemoveIsStructural(t *testing.T) {
	r := NewRegistry()
	shared := uuid.New()
	build := r.Add("build", shared)
	test := r.Add("test", shared)

	if !r.Remove("build") {
		t.Fatal("Remove(build) = false, want true")
	}
	if r.Remove("build") {
		t.Fatal("second Remove(build) = true, want false")
	}
	if _, ok := r.Get("build"); ok {
		t.Fatal("build still registered")
	}
	if !test.Contains(shared) {
		t.Fatal("removing build affected test membership")
	}
	if build.Len() != 1 {
		t.Fatal("detached category lost its members")
	}
	if got := r.Labels(); len(got) != 1 || got[0] != "test" {
		t.Fatalf("Labels() = %v, want [test]", got)
	}

	again := r.GetOrCreate("build")
	if again == build || again.Len() != 0 {
		t.Fatal("recreated category should be fresh")
	}
}

func TestRemoveMember(t *testing.T) {
	c := newCategory("x")
	a, b, d := uuid.New(), uuid.New(), uuid.New()
	c.Add(a)
	c.Add(b)
	c.Add(d)

	if !c.RemoveMember(b) {
		t.Fatal("RemoveMember(b) = false")
	}
	if c.RemoveMember(b) {
		t.Fatal("RemoveMember(b) twice = true")
	}
	got := c.Members()
	if len(got) != 2 || got[0] != a || got[1] != d {
		t.Fatalf("members = %v, want [%s %s]", got, a, d)
	}
}

func TestStatsAndSnapshot(t *testing.T) {
	r := NewRegistry()
	c := r.Add("build", uuid.New())
	c.RecordAdmission(true)
	c.RecordAdmission(true)
	c.RecordAdmission(false)

	if got := c.Stats(); got.Admitted != 2 || got.Denied != 1 {
		t.Fatalf("Stats() = %+v, want {2 1}", got)
	}

	r.Restore("deploy", []uuid.UUID{uuid.New(), uuid.New()})
	snap := r.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("Snapshot() has %d entries, want 2", len(snap))
	}
	if snap[0].Label != "build" || snap[0].Stats.Denied != 1 {
		t.Errorf("snapshot[0] = %+v", snap[0])
	}
	if snap[1].Label != "deploy" || len(snap[1].Members) != 2 {
		t.Errorf("snapshot[1] = %+v", snap[1])
	}
}

func TestConcurrentGetOrCreateAndAdd(t *testing.T) {
	r := NewRegistry()
	const workers = 16
	const perWorker = 200

	var wg sync.WaitGroup
	seen := make([]*Category, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				seen[w] = r.Add("shared", uuid.New())
			}
		}(w)
	}
	wg.Wait()

	for w := 1; w < workers; w++ {
		if seen[w] != seen[0] {
			t.Fatal("concurrent callers received different categories")
		}
	}
	if r.Len() != 1 {
		t.Fatalf("registry has %d categories, want 1", r.Len())
	}
	if got := seen[0].Len(); got != workers*perWorker {
		t.Fatalf("category has %d members, want %d", got, workers*perWorker)
	}
}
