package alchemylanguage

// ResponseInfo holds the envelope fields every AlchemyLanguage response carries.
type ResponseInfo struct {
	Status            *string `json:"status,omitempty"`
	URL               *string `json:"url,omitempty"`
	Language          *string `json:"language,omitempty"`
	TotalTransactions *int    `json:"totalTransactions,omitempty"`
}

// Transactions is the number of API transactions the call was billed for.
func (r ResponseInfo) Transactions() int {
	if r.TotalTransactions == nil {
		return 0
	}
	return *r.TotalTransactions
}

// Sentiment of a document, keyword or entity. Mixed is 1 when the text
// carries both positive and negative sentiment.
type Sentiment struct {
	Mixed *int     `json:"mixed,omitempty"`
	Score *float64 `json:"score,omitempty"`
	Type  *string  `json:"type,omitempty"`
}

// KnowledgeGraph places a result in the Watson knowledge graph, e.g.
// "/companies/organizations/IBM".
type KnowledgeGraph struct {
	TypeHierarchy *string `json:"typeHierarchy,omitempty"`
}

// Keyword is one ranked keyword found in the document.
type Keyword struct {
	Text           *string         `json:"text,omitempty"`
	Relevance      *float64        `json:"relevance,omitempty"`
	Sentiment      *Sentiment      `json:"sentiment,omitempty"`
	KnowledgeGraph *KnowledgeGraph `json:"knowledgeGraph,omitempty"`
}

// Keywords is the result of a ranked keyword extraction.
type Keywords struct {
	ResponseInfo
	Keywords []Keyword `json:"keywords"`
}

// Disambiguation links an entity to external datasets.
type Disambiguation struct {
	Name     *string  `json:"name,omitempty"`
	SubType  []string `json:"subType,omitempty"`
	Website  *string  `json:"website,omitempty"`
	Geo      *string  `json:"geo,omitempty"`
	DBpedia  *string  `json:"dbpedia,omitempty"`
	Freebase *string  `json:"freebase,omitempty"`
	Yago     *string  `json:"yago,omitempty"`
	OpenCyc  *string  `json:"opencyc,omitempty"`
}

// Entity is one named entity with its type and mention count.
type Entity struct {
	Type           *string         `json:"type,omitempty"`
	Text           *string         `json:"text,omitempty"`
	Relevance      *float64        `json:"relevance,omitempty"`
	Count          *int            `json:"count,omitempty"`
	Sentiment      *Sentiment      `json:"sentiment,omitempty"`
	KnowledgeGraph *KnowledgeGraph `json:"knowledgeGraph,omitempty"`
	Disambiguated  *Disambiguation `json:"disambiguated,omitempty"`
}

// Entities is the result of a named entity extraction.
type Entities struct {
	ResponseInfo
	Entities []Entity `json:"entities"`
}

// Concept is one tagged concept and its linked-data references.
type Concept struct {
	Text           *string         `json:"text,omitempty"`
	Relevance      *float64        `json:"relevance,omitempty"`
	KnowledgeGraph *KnowledgeGraph `json:"knowledgeGraph,omitempty"`
	Website        *string         `json:"website,omitempty"`
	Geo            *string         `json:"geo,omitempty"`
	DBpedia        *string         `json:"dbpedia,omitempty"`
	Freebase       *string         `json:"freebase,omitempty"`
	Yago           *string         `json:"yago,omitempty"`
	OpenCyc        *string         `json:"opencyc,omitempty"`
	CIAFactbook    *string         `json:"ciaFactbook,omitempty"`
	Census         *string         `json:"census,omitempty"`
	Geonames       *string         `json:"geonames,omitempty"`
	MusicBrainz    *string         `json:"musicBrainz,omitempty"`
	CrunchBase     *string         `json:"crunchbase,omitempty"`
}

// ConceptResponse is the result of a ranked concept tagging.
type ConceptResponse struct {
	ResponseInfo
	Concepts []Concept `json:"concepts"`
}

// Authors lists the author names found on a page.
type Authors struct {
	Confident *bool    `json:"confident,omitempty"`
	Names     []string `json:"names,omitempty"`
}

// DocumentAuthors is the result of an author extraction.
type DocumentAuthors struct {
	ResponseInfo
	Authors *Authors `json:"authors,omitempty"`
}

// Language is the result of language detection. The detected language
// itself is ResponseInfo.Language.
type Language struct {
	ResponseInfo
	ISO6391        *string `json:"iso-639-1,omitempty"`
	ISO6392        *string `json:"iso-639-2,omitempty"`
	ISO6393        *string `json:"iso-639-3,omitempty"`
	Ethnologue     *string `json:"ethnologue,omitempty"`
	NativeSpeakers *string `json:"native-speakers,omitempty"`
	Wikipedia      *string `json:"wikipedia,omitempty"`
}

// Microformat is one field/data pair extracted from page markup.
type Microformat struct {
	Field *string `json:"field,omitempty"`
	Data  *string `json:"data,omitempty"`
}

// Microformats is the result of microformat extraction.
type Microformats struct {
	ResponseInfo
	Microformats []Microformat `json:"microformats,omitempty"`
}

// PublicationDate is the detected publication date and its confidence.
type PublicationDate struct {
	Date      *string `json:"date,omitempty"`
	Confident *bool   `json:"confident,omitempty"`
}

// PublicationResponse is the result of publication date extraction.
type PublicationResponse struct {
	ResponseInfo
	PublicationDate *PublicationDate `json:"publicationDate,omitempty"`
}

// DocumentSentiment is the result of document-level sentiment analysis.
type DocumentSentiment struct {
	ResponseInfo
	DocSentiment *Sentiment `json:"docSentiment,omitempty"`
}
