package srv

type Srv struct {
	views *ViewSrv
}

type ApplyFunc func(*Srv)

func SetupSrvs(opts ...ApplyFunc) *Srv {
	a := &Srv{}

	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (s *Srv) Views() *ViewSrv {
	return s.views
}

func ApplyViews(cache func() Cache) ApplyFunc {
	return func(s *Srv) {
		s.views = SetupViewSrv(cache)
	}
}
