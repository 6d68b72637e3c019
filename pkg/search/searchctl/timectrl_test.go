package searchctl_test

import (
	"testing"
	"time"

	"github.com/herohde/tak/pkg/search/searchctl"
	"github.com/stretchr/testify/assert"
)

func TestTimeControl_Limits(t *testing.T) {
	tc := searchctl.TimeControl{Remaining: 80 * time.Second}

	soft, hard := tc.Limits()
	assert.Equal(t, time.Second, soft, "80s / (2*40) == 1s")
	assert.Equal(t, 3*time.Second, hard)
}

func TestTimeControl_LimitsWithMovesToGo(t *testing.T) {
	tc := searchctl.TimeControl{Remaining: 20 * time.Second, Moves: 9}

	soft, hard := tc.Limits()
	assert.Equal(t, time.Second, soft, "20s / (2*10) == 1s")
	assert.Equal(t, 3*time.Second, hard)
}

func TestTimeControl_String(t *testing.T) {
	assert.Equal(t, "10.0s", searchctl.TimeControl{Remaining: 10 * time.Second}.String())
	assert.Equal(t, "10.0s[moves=5]", searchctl.TimeControl{Remaining: 10 * time.Second, Moves: 5}.String())
}
