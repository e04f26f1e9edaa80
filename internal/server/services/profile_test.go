package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"devfolio/internal/common"
	profilesrepo "devfolio/internal/server/repositories/profiles"
)

func TestSplitProjects(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"messy delimiters", "A, B ,,C", []string{"A", "B", "C"}},
		{"empty", "", []string{}},
		{"only separators", " , ,", []string{}},
		{"two entries", "Go, Rust", []string{"Go", "Rust"}},
		{"order preserved", "z,a,m", []string{"z", "a", "m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitProjects(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("SplitProjects(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSave_PreservesAssetURLWhenAbsent(t *testing.T) {
	rm := &fakeRepoManager{u: newMemUsersRepo(), p: newMemProfilesRepo()}
	s := NewProfileService(nil, rm)

	imageURL := "https://bucket.s3.us-east-1.amazonaws.com/images/1_1_pic.png"
	first, err := s.Save(context.Background(), &profilesrepo.Update{
		UserID:   1,
		Bio:      "v1",
		ImageURL: &imageURL,
	})
	if err != nil {
		t.Fatalf("first Save error: %v", err)
	}
	if first.ImageURL != imageURL {
		t.Fatalf("first save lost image url: %q", first.ImageURL)
	}

	// Second save without a new file keeps the stored URL; text overwrites.
	second, err := s.Save(context.Background(), &profilesrepo.Update{
		UserID: 1,
		Bio:    "v2",
	})
	if err != nil {
		t.Fatalf("second Save error: %v", err)
	}
	if second.ImageURL != imageURL {
		t.Fatalf("second save replaced image url: %q", second.ImageURL)
	}
	if second.Bio != "v2" {
		t.Fatalf("second save did not overwrite bio: %q", second.Bio)
	}

	replacement := "https://bucket.s3.us-east-1.amazonaws.com/images/1_2_new.png"
	third, err := s.Save(context.Background(), &profilesrepo.Update{
		UserID:   1,
		Bio:      "v3",
		ImageURL: &replacement,
	})
	if err != nil {
		t.Fatalf("third Save error: %v", err)
	}
	if third.ImageURL != replacement {
		t.Fatalf("third save did not replace image url: %q", third.ImageURL)
	}
}

func TestPortfolio_Composes(t *testing.T) {
	rm := &fakeRepoManager{u: newMemUsersRepo(), p: newMemProfilesRepo()}
	users := newUserService(t, rm)
	s := NewProfileService(nil, rm)

	u, err := users.Register(context.Background(), "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if _, err := s.Save(context.Background(), &profilesrepo.Update{
		UserID:   u.ID,
		Bio:      "Hi",
		Projects: "Go, Rust",
	}); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	view, err := s.Portfolio(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("Portfolio error: %v", err)
	}
	if view.Email != "a@x.com" || view.Profile.Bio != "Hi" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if !reflect.DeepEqual(view.Projects, []string{"Go", "Rust"}) {
		t.Fatalf("unexpected projects: %v", view.Projects)
	}
	if view.Profile.ImageURL != "" || view.Profile.ResumeURL != "" {
		t.Fatalf("expected empty asset urls: %+v", view.Profile)
	}
}

func TestPortfolio_NotFoundIsUniform(t *testing.T) {
	rm := &fakeRepoManager{u: newMemUsersRepo(), p: newMemProfilesRepo()}
	users := newUserService(t, rm)
	s := NewProfileService(nil, rm)

	// Registered user without a profile.
	if _, err := users.Register(context.Background(), "b@x.com", "pw1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, noUser := s.Portfolio(context.Background(), "ghost@x.com")
	_, noProfile := s.Portfolio(context.Background(), "b@x.com")

	if !errors.Is(noUser, common.ErrorNotFound) {
		t.Fatalf("missing user: want common.ErrorNotFound, got %v", noUser)
	}
	if !errors.Is(noProfile, common.ErrorNotFound) {
		t.Fatalf("missing profile: want common.ErrorNotFound, got %v", noProfile)
	}
	// The two outcomes must be indistinguishable to the caller.
	if noUser.Error() != noProfile.Error() {
		t.Fatalf("outcomes differ: %v vs %v", noUser, noProfile)
	}
}

func TestGet_DoesNotCreate(t *testing.T) {
	rm := &fakeRepoManager{u: newMemUsersRepo(), p: newMemProfilesRepo()}
	s := NewProfileService(nil, rm)

	if _, err := s.Get(context.Background(), 1); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
	if len(rm.p.byUser) != 0 {
		t.Fatalf("Get created a profile: %+v", rm.p.byUser)
	}
}
