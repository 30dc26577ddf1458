package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/lazycommit/internal/config"
)

func commitConfig(maxTitle int, enforce bool) config.CommitConfig {
	cfg := config.DefaultConfig().Commit
	cfg.MaxTitleLength = maxTitle
	cfg.EnforceConventional = enforce
	return cfg
}

func TestValidateTitleConventionalOK(t *testing.T) {
	assert.NoError(t, ValidateTitle("fix: correct null check", commitConfig(50, true)))
}

func TestValidateTitleTooLongOnly(t *testing.T) {
	title := strings.Repeat("a", 60)
	err := ValidateTitle(title, commitConfig(50, false))
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []Kind{TitleTooLong}, verr.Kinds())
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "Title is 60 characters (max 50)", err.Error())
}

func TestValidateTitleBothViolations(t *testing.T) {
	title := strings.Repeat("b", 51)
	err := ValidateTitle(title, commitConfig(50, true))

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []Kind{TitleTooLong, NotConventionalCommit}, verr.Kinds())
	assert.True(t, verr.Has(NotConventionalCommit))
	assert.Contains(t, err.Error(), "(max 50)\n\nMust follow conventional commit format")
}

func TestValidateTitleCountsRunes(t *testing.T) {
	title := "feat: " + strings.Repeat("é", 44)
	assert.NoError(t, ValidateTitle(title, commitConfig(50, true)))
	assert.Error(t, ValidateTitle(title+"é", commitConfig(50, true)))
}

func TestValidateTitleEmpty(t *testing.T) {
	for _, title := range []string{"", "   "} {
		var verr *Error
		require.ErrorAs(t, ValidateTitle(title, commitConfig(50, false)), &verr)
		assert.Equal(t, []Kind{EmptyTitle}, verr.Kinds())
	}
}

func TestValidateTitleIdempotent(t *testing.T) {
	cfg := commitConfig(50, true)
	titles := []string{"feat(api): add endpoint", "docs: update guide", "revert: undo change"}
	for _, title := range titles {
		require.NoError(t, ValidateTitle(title, cfg))
		require.NoError(t, ValidateTitle(title, cfg))
		formatted := FormatTitle(title, cfg)
		assert.Equal(t, title, formatted)
		assert.NoError(t, ValidateTitle(formatted, cfg))
	}
}

func TestIsConventional(t *testing.T) {
	for _, typ := range ConventionalTypes {
		assert.True(t, IsConventional(typ+": something"), typ)
		assert.True(t, IsConventional(typ+"(scope): something"), typ)
	}
	assert.False(t, IsConventional("feat:missing space"))
	assert.False(t, IsConventional("Feat: capitalised"))
	assert.False(t, IsConventional("feature: unknown type"))
	assert.False(t, IsConventional(""))
}

func TestValidateBody(t *testing.T) {
	cfg := config.DefaultConfig().Commit
	assert.NoError(t, ValidateBody("short line\n\nanother", cfg))
	assert.NoError(t, ValidateBody("", cfg))

	err := ValidateBody("ok\n"+strings.Repeat("x", 73)+"\n"+strings.Repeat("y", 80), cfg)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []Kind{BodyTooLong}, verr.Kinds())
	assert.Contains(t, err.Error(), "Body line 2 is 73 characters")
}

func TestFormatTitle(t *testing.T) {
	cfg := config.DefaultConfig().Commit
	assert.Equal(t, "Add login page", FormatTitle("  add login page ", cfg))
	assert.Equal(t, "feat: add login", FormatTitle("feat: add login", cfg))

	cfg.AutoCapitalizeTitle = false
	assert.Equal(t, "add login page", FormatTitle("add login page", cfg))
}

func TestCapitalizeFirst(t *testing.T) {
	assert.Equal(t, "", CapitalizeFirst(""))
	assert.Equal(t, "Éclair", CapitalizeFirst("éclair"))
	assert.Equal(t, "123", CapitalizeFirst("123"))
}

func TestTitleHelp(t *testing.T) {
	cfg := config.DefaultConfig().Commit
	assert.Contains(t, TitleHelp(cfg), "Types: feat, fix, docs")
	cfg.EnforceConventional = false
	assert.Equal(t, "Max length: 50 characters", TitleHelp(cfg))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "TitleTooLong", TitleTooLong.String())
	assert.Equal(t, "Unknown", Kind(99).String())
}
