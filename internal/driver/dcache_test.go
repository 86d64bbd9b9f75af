package driver

import (
	"testing"

	"pyrsc/internal/diag"
	"pyrsc/internal/project"
	"pyrsc/internal/source"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	key := project.DigestBytes([]byte("some content"))
	payload := DiskPayload{
		Path:   "main.py",
		Broken: true,
		Diags: []CachedDiag{{
			Code:     uint16(diag.NameUndefined),
			Severity: uint8(diag.SevError),
			Message:  "name 'x' is not defined",
			Start:    4,
			End:      5,
			Notes:    []CachedNote{{Start: 0, End: 1, Msg: "declared here"}},
		}},
	}
	if err := cache.Put(key, &payload); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got DiskPayload
	hit, err := cache.Get(key, &got)
	if err != nil || !hit {
		t.Fatalf("Get: hit=%v err=%v", hit, err)
	}
	if got.Path != "main.py" || !got.Broken || len(got.Diags) != 1 {
		t.Fatalf("payload = %+v", got)
	}
	if got.Diags[0].Message != "name 'x' is not defined" || len(got.Diags[0].Notes) != 1 {
		t.Fatalf("diag = %+v", got.Diags[0])
	}
}

func TestDiskCacheMiss(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var out DiskPayload
	hit, err := cache.Get(project.DigestBytes([]byte("never stored")), &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Error("unexpected hit")
	}
}

func TestReplayDiagsRebindsFile(t *testing.T) {
	bag := diag.NewBag(8)
	ReplayDiags(bag, source.FileID(7), []CachedDiag{{
		Code:     uint16(diag.TypeMismatchAssign),
		Severity: uint8(diag.SevError),
		Message:  "cannot assign str to int",
		Start:    10,
		End:      16,
	}})
	items := bag.Items()
	if len(items) != 1 {
		t.Fatalf("items = %d", len(items))
	}
	if items[0].Primary.File != 7 || items[0].Primary.Start != 10 {
		t.Errorf("span = %+v", items[0].Primary)
	}
	if items[0].Code != diag.TypeMismatchAssign {
		t.Errorf("code = %v", items[0].Code)
	}
}

func TestEncodeReplayRoundTrip(t *testing.T) {
	orig := diag.NewBag(8)
	d := diag.NewError(diag.NameRedeclared, source.Span{File: 1, Start: 3, End: 8}, "'f' redeclared")
	d = d.WithNote(source.Span{File: 1, Start: 0, End: 2}, "previous declaration")
	orig.Add(d)

	replayed := diag.NewBag(8)
	ReplayDiags(replayed, 1, EncodeDiags(orig))
	if replayed.Len() != 1 {
		t.Fatalf("len = %d", replayed.Len())
	}
	got := replayed.Items()[0]
	if got.Message != "'f' redeclared" || len(got.Notes) != 1 || got.Notes[0].Msg != "previous declaration" {
		t.Fatalf("replayed = %+v", got)
	}
}
