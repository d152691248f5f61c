package contextkeys

type RequestId struct{}

type HttpClientStartsAt struct{}
