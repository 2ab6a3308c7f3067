package dto

// JSONFanPage represents the deserialized pagedata blob from a fan's
// collection page at https://bandcamp.com/{username}.
type JSONFanPage struct {
	CollectionCount int                 `json:"collection_count"`
	FanData         *JSONFanData        `json:"fan_data"`
	CollectionData  *JSONCollectionData `json:"collection_data"`
}

// JSONFanData contains the fan's identity.
type JSONFanData struct {
	FanID int64 `json:"fan_id"`
}

// JSONCollectionData contains the first page of the collection.
type JSONCollectionData struct {
	LastToken      string            `json:"last_token"`
	RedownloadURLs map[string]string `json:"redownload_urls"`
}

// JSONCollectionItems represents the response of the
// fancollection/1/collection_items API, which pages through the rest
// of the collection.
type JSONCollectionItems struct {
	LastToken      string            `json:"last_token"`
	MoreAvailable  bool              `json:"more_available"`
	RedownloadURLs map[string]string `json:"redownload_urls"`
}

// JSONCollectionPayload is the request body for the collection_items API.
type JSONCollectionPayload struct {
	FanID          int64  `json:"fan_id"`
	Count          int    `json:"count"`
	OlderThanToken string `json:"older_than_token"`
}
