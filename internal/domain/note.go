package domain

type NoteField string

const (
	NotePublic    NoteField = "public"
	NoteProtected NoteField = "protected"
	NotePrivate   NoteField = "private"
)

// Note holds the three independent note texts of one identity.
type Note struct {
	UID       IdentityID
	Public    *string
	Protected *string
	Private   *string
}

type NotePatch struct {
	Public    *string
	Protected *string
	Private   *string
}

func (n Note) Apply(patch NotePatch) Note {
	if patch.Public != nil {
		n.Public = StringPtr(*patch.Public)
	}
	if patch.Protected != nil {
		n.Protected = StringPtr(*patch.Protected)
	}
	if patch.Private != nil {
		n.Private = StringPtr(*patch.Private)
	}
	return n
}

func (n Note) Field(field NoteField) *string {
	switch field {
	case NotePublic:
		return n.Public
	case NoteProtected:
		return n.Protected
	case NotePrivate:
		return n.Private
	default:
		return nil
	}
}

func PatchField(field NoteField, text string) NotePatch {
	switch field {
	case NotePublic:
		return NotePatch{Public: &text}
	case NoteProtected:
		return NotePatch{Protected: &text}
	case NotePrivate:
		return NotePatch{Private: &text}
	default:
		return NotePatch{}
	}
}

// Identity binds a platform account to an IdentityID.
type Identity struct {
	ID       IdentityID
	Platform string
	UserID   string
}
