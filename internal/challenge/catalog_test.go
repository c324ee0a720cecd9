package challenge

import (
	"fmt"
	"sync"
	"testing"

	"github.com/Huskehhh/hackthebot/internal/challenge/domain"
)

func TestCatalog_MachineSentinel(t *testing.T) {
	c := NewCatalog()
	if got := c.Label(domain.MachineCategoryID); got != "Machine" {
		t.Errorf("Label(%d) = %q, want %q", domain.MachineCategoryID, got, "Machine")
	}
}

func TestCatalog_PutAndLabel(t *testing.T) {
	c := NewCatalog()
	c.Put(3, "Web")
	c.Put(5, "Pwn")

	if got := c.Label(3); got != "Web" {
		t.Errorf("Label(3) = %q, want %q", got, "Web")
	}
	if got := c.Label(5); got != "Pwn" {
		t.Errorf("Label(5) = %q, want %q", got, "Pwn")
	}
	if got := c.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3 (two entries plus the machine sentinel)", got)
	}
}

func TestCatalog_UnknownFallback(t *testing.T) {
	c := NewCatalog()
	if got := c.Label(999); got != UnknownCategoryLabel {
		t.Errorf("Label(999) = %q, want %q", got, UnknownCategoryLabel)
	}
}

func TestCatalog_ConcurrentAccess(t *testing.T) {
	c := NewCatalog()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(id int64) {
			defer wg.Done()
			c.Put(id, fmt.Sprintf("category-%d", id))
		}(int64(i))
		go func(id int64) {
			defer wg.Done()
			_ = c.Label(id)
		}(int64(i))
	}
	wg.Wait()
}
