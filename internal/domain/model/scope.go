package model

// カートの所有者スコープ。
// 認証済み（ユーザーID）か匿名ゲストのどちらか。
// "guest" というユーザーIDとの衝突を避けるため、マジック文字列ではなく型で表す。
type Scope struct {
	userID string
}

const guestScopeID = "guest"

// 認証済みユーザーのスコープ
func AuthenticatedScope(userID string) Scope {
	return Scope{userID: userID}
}

// 未認証（ゲスト）のスコープ
func AnonymousScope() Scope {
	return Scope{}
}

func (s Scope) IsAnonymous() bool {
	return s.userID == ""
}

// UserID は認証済みのときだけ有効
func (s Scope) UserID() (string, bool) {
	if s.userID == "" {
		return "", false
	}
	return s.userID, true
}

// StorageKey は永続化キー（medcare_cart_<scopeId>）を返す。
func (s Scope) StorageKey() string {
	if s.userID == "" {
		return "medcare_cart_" + guestScopeID
	}
	return "medcare_cart_" + s.userID
}
